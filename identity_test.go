package ofxconnect_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxconnect"
)

func testIdentity() ofxconnect.Identity {
	return ofxconnect.Identity{
		FID:      "5959",
		Org:      "HAN",
		URL:      "https://example-bank.test/ofx",
		User:     "example_user",
		Password: "PaSSwOrd",
	}
}

var _ = Describe("Identity", func() {
	Describe("WithDefaults()", func() {
		It("should fill application and protocol defaults", func() {
			id := testIdentity().WithDefaults()
			Expect(id.AppID).To(Equal("QWIN"))
			Expect(id.AppVersion).To(Equal("2700"))
			Expect(id.OFXVersion).To(Equal("102"))
		})
		It("should keep configured values", func() {
			id := testIdentity()
			id.AppVersion = "2500"
			id.OFXVersion = "103"
			id.AccountType = "savings"
			id = id.WithDefaults()
			Expect(id.AppVersion).To(Equal("2500"))
			Expect(id.OFXVersion).To(Equal("103"))
			Expect(id.AccountType).To(Equal(ofxconnect.Savings))
		})
	})
	Describe("Validate()", func() {
		It("should accept a complete identity", func() {
			Expect(testIdentity().WithDefaults().Validate()).To(Succeed())
		})
		DescribeTable("should name the offending field", func(mutate func(*ofxconnect.Identity), field string) {
			id := testIdentity().WithDefaults()
			mutate(&id)
			err := id.Validate()
			var configErr *ofxconnect.ConfigError
			Expect(errors.As(err, &configErr)).To(BeTrue())
			Expect(configErr.Field).To(Equal(field))
		},
			Entry("empty URL", func(id *ofxconnect.Identity) { id.URL = "" }, "URL"),
			Entry("relative URL", func(id *ofxconnect.Identity) { id.URL = "/ofx" }, "URL"),
			Entry("non http URL", func(id *ofxconnect.Identity) { id.URL = "ftp://example-bank.test/ofx" }, "URL"),
			Entry("empty FID", func(id *ofxconnect.Identity) { id.FID = "" }, "FID"),
			Entry("empty Org", func(id *ofxconnect.Identity) { id.Org = " " }, "Org"),
			Entry("empty User", func(id *ofxconnect.Identity) { id.User = "" }, "User"),
			Entry("empty Password", func(id *ofxconnect.Identity) { id.Password = "" }, "Password"),
			Entry("unsupported version", func(id *ofxconnect.Identity) { id.OFXVersion = "211" }, "OFXVersion"),
			Entry("malformed app version", func(id *ofxconnect.Identity) { id.AppVersion = "27" }, "AppVersion"),
			Entry("missing client UID for 103", func(id *ofxconnect.Identity) { id.OFXVersion = "103" }, "ClientUID"),
			Entry("missing client UID for 160", func(id *ofxconnect.Identity) { id.OFXVersion = "160" }, "ClientUID"),
			Entry("unsupported account type", func(id *ofxconnect.Identity) { id.AccountType = "BROKERAGE" }, "AccountType"),
		)
		It("should not require a client UID before 103", func() {
			id := testIdentity().WithDefaults()
			id.OFXVersion = "102"
			Expect(id.Validate()).To(Succeed())
		})
	})
	Describe("String()", func() {
		It("should never print the password", func() {
			id := testIdentity()
			for _, format := range []string{"%v", "%+v", "%#v", "%s"} {
				out := fmt.Sprintf(format, id)
				Expect(out).NotTo(ContainSubstring("PaSSwOrd"))
				Expect(out).To(ContainSubstring("example_user"))
			}
		})
	})
	Describe("ParseAccountType()", func() {
		DescribeTable("should accept known types in any case", func(input string, expected ofxconnect.AccountType) {
			t, err := ofxconnect.ParseAccountType(input)
			Expect(err).To(BeNil())
			Expect(t).To(Equal(expected))
		},
			Entry("checking", "checking", ofxconnect.Checking),
			Entry("SAVINGS", "SAVINGS", ofxconnect.Savings),
			Entry("MoneyMrkt", "MoneyMrkt", ofxconnect.MoneyMarket),
			Entry("creditline", "creditline", ofxconnect.CreditLine),
			Entry("cd", "cd", ofxconnect.CD),
			Entry("CreditCard", "CreditCard", ofxconnect.CreditCard),
		)
		It("should reject unknown types", func() {
			_, err := ofxconnect.ParseAccountType("401K")
			Expect(err).To(MatchError(`error - invalid configuration AccountType: unsupported account type "401K"`))
		})
	})
})
