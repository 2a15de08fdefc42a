package ofx_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxconnect/ofx"
)

var _ = Describe("dates", func() {
	Describe("ParseDate()", func() {
		Context("when given a valid date string", func() {
			DescribeTable("should parse to a time.", func(input string, expected time.Time, loc *time.Location) {
				got, err := ofx.ParseDate(input, loc)
				Expect(err).To(Succeed())
				Expect(*got).To(BeTemporally("==", expected))
			},
				Entry("YYYYMMDD", "20191001", time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC), nil),
				Entry("YYYYMMDD in location", "20191001",
					time.Date(2019, 10, 1, 0, 0, 0, 0, time.FixedZone("TTT", -11*60*60)), time.FixedZone("TTT", -11*60*60)),
				Entry("YYYYMMDDHHMMSS", "20171108090000", time.Date(2017, 11, 8, 9, 0, 0, 0, time.UTC), nil),
				Entry("YYYYMMDDHHMMSS.XXX", "20171108090000.250", time.Date(2017, 11, 8, 9, 0, 0, 250e6, time.UTC), nil),
				Entry("YYYYMMDDHHMMSS.XXX[0:GMT]", "20170226120000.000[0:GMT]", time.Date(2017, 2, 26, 12, 0, 0, 0, time.UTC), nil),
				Entry("YYYYMMDDHHMMSS.XXX[-5:EST]", "20180313093000.000[-5:EST]",
					time.Date(2018, 3, 13, 14, 30, 0, 0, time.UTC), nil),
				Entry("offset overrides location", "20180313093000[+10]",
					time.Date(2018, 3, 12, 23, 30, 0, 0, time.UTC), time.FixedZone("TTT", -11*60*60)),
			)
		})
		Context("when given a invalid date string", func() {
			DescribeTable("should return an error.", func(input string) {
				got, err := ofx.ParseDate(input, nil)
				Expect(got).To(BeNil())
				Expect(err).To(MatchError("error - date string can not be parsed"))
			},
				Entry("Empty", ""),
				Entry("Invalid text", "test"),
				Entry("Invalid format", "2019/01/02"),
				Entry("Missing month and date", "2019"),
				Entry("Missing date", "2019-01"),
				Entry("Invalid month", "20191301"),
			)
		})
	})
	Describe("FormatDate()", func() {
		It("should format as YYYYMMDD", func() {
			Expect(ofx.FormatDate(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))).To(Equal("20260203"))
		})
	})
	Describe("FormatDateTime()", func() {
		It("should format as YYYYMMDDHHMMSS", func() {
			Expect(ofx.FormatDateTime(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))).To(Equal("20260203040506"))
		})
	})
})
