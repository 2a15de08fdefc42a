package ofxgodec_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/rockstardevs/ofxconnect/ofx"
	"github.com/rockstardevs/ofxconnect/ofxgodec"
)

var _ = Describe("Decoder", func() {
	var decoder *ofxgodec.Decoder
	BeforeEach(func() {
		decoder = ofxgodec.NewDecoder()
	})

	It("should decode account information", func() {
		r, err := decoder.Decode(fixture("accounts.ofx"))
		Expect(err).To(BeNil())
		Expect(r.HasAccountInfo).To(BeTrue())
		Expect(r.Accounts).To(HaveLen(2))
		Expect(r.Accounts[0].ID).To(Equal("123456789"))
		Expect(r.Accounts[0].BankID).To(Equal("011000015"))
		Expect(r.Accounts[0].Type).To(Equal("CHECKING"))
		Expect(r.Accounts[0].Description).To(Equal("Everyday Checking"))
		Expect(r.Accounts[1].Type).To(Equal("CREDITCARD"))
	})

	It("should decode a credit card statement", func() {
		r, err := decoder.Decode(fixture("ccstatement.ofx"))
		Expect(err).To(BeNil())
		Expect(r.SignOn.OK()).To(BeTrue())
		Expect(r.Accounts).To(HaveLen(1))
		s := r.Accounts[0].Statement
		Expect(s).NotTo(BeNil())
		Expect(s.Currency).To(Equal("USD"))
		Expect(s.Transactions).To(HaveLen(2))
		Expect(s.Transactions[0].Type).To(Equal(ofx.DEBIT))
		Expect(s.Transactions[0].ID).To(Equal("CC1"))
		Expect(s.Transactions[0].Amount.Equal(decimal.RequireFromString("-42.50"))).To(BeTrue())
		Expect(s.LedgerBalance.Amount.Equal(decimal.RequireFromString("-57.50"))).To(BeTrue())
	})

	It("should report a refused sign on", func() {
		r, err := decoder.Decode(fixture("badlogin.ofx"))
		Expect(err).To(BeNil())
		Expect(r.SignOn.OK()).To(BeFalse())
		Expect(r.SignOn.Code).To(Equal(15500))
	})

	It("should fail on input that is not OFX", func() {
		r, err := decoder.Decode([]byte("<html>Service Unavailable</html>"))
		Expect(r).To(BeNil())
		Expect(err).To(HaveOccurred())
	})
})
