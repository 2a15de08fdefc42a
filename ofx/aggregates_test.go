package ofx_test

import (
	"reflect"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxconnect/ofx"
)

var _ = Describe("aggregates", func() {
	Describe("GetAggregates()", func() {
		It("should return the singleton instance.", func() {
			i1 := ofx.GetAggregates()
			i2 := ofx.GetAggregates()
			Expect(i1).NotTo(BeNil())
			Expect(reflect.ValueOf(i1).Pointer()).To(Equal(reflect.ValueOf(i2).Pointer()))
		})
	})
	Describe("IsAggregate()", func() {
		DescribeTable("should return true if the element is aggregate", func(name string, expected bool) {
			Expect(ofx.IsAggregate(name)).To(Equal(expected))
		},
			Entry("OFX", "OFX", true),
			Entry("SONRS", "SONRS", true),
			Entry("STATUS", "STATUS", true),
			Entry("SIGNUPMSGSRSV1", "SIGNUPMSGSRSV1", true),
			Entry("ACCTINFO", "ACCTINFO", true),
			Entry("BANKACCTINFO", "BANKACCTINFO", true),
			Entry("CCACCTINFO", "CCACCTINFO", true),
			Entry("STMTTRNRS", "STMTTRNRS", true),
			Entry("BANKACCTFROM", "BANKACCTFROM", true),
			Entry("CREDITCARDMSGSRSV1", "CREDITCARDMSGSRSV1", true),
			Entry("CCSTMTRS", "CCSTMTRS", true),
			Entry("CCACCTFROM", "CCACCTFROM", true),
			Entry("STMTTRN", "STMTTRN", true),
			Entry("LEDGERBAL", "LEDGERBAL", true),

			Entry("CODE", "CODE", false),
			Entry("ACCTID", "ACCTID", false),
			Entry("SVCSTATUS", "SVCSTATUS", false),
		)
	})
})
