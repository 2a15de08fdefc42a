package ofx

import (
	"encoding/xml"
	"io"
	"regexp"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"
)

//revive:disable:exported

var txnPattern = regexp.MustCompile(`<STMTTRN>`)

// TransactionType is a transaction type as listed in OFX 2.2 Section 11.4.4.3
// https://www.ofx.net/downloads/OFX%202.2.pdf
type TransactionType string

const (
	// Common Transaction Types
	DEBIT  TransactionType = "DEBIT"
	CREDIT TransactionType = "CREDIT"
	// Uncommon Transaction Types
	INTEREST      TransactionType = "INT"
	DIVIDEND      TransactionType = "DIV"
	FEE           TransactionType = "FEE"
	SERVICECHARGE TransactionType = "SRVCHG"
	DEPOSIT       TransactionType = "DEP"
	ATM           TransactionType = "ATM"
	POS           TransactionType = "POS"
	TRANSFER      TransactionType = "XFER"
	CHECK         TransactionType = "CHECK"
	PAYMENT       TransactionType = "PAYMENT"
	CASH          TransactionType = "CASH"
	DIRECTDEPOSIT TransactionType = "DIRECTDEP"
	DIRECTDEBIT   TransactionType = "DIRECTDEBIT"
	REPEATPAYMENT TransactionType = "REPEATPMT"
	OTHER         TransactionType = "OTHER"
)

type Transaction struct {
	Type   TransactionType `xml:"TRNTYPE"`
	Posted string          `xml:"DTPOSTED"`
	Amount decimal.Decimal `xml:"TRNAMT"`
	ID     string          `xml:"FITID"`
	Date   string          `xml:"DTUSER,omitempty"`
	Name   string          `xml:"NAME,omitempty"`
	Payee  string          `xml:"PAYEE,omitempty"`
	Memo   string          `xml:"MEMO,omitempty"`
}

type SignOnResponse struct {
	Code           int    `xml:"STATUS>CODE"`
	Severity       string `xml:"STATUS>SEVERITY"`
	Message        string `xml:"STATUS>MESSAGE,omitempty"`
	Date           string `xml:"DTSERVER"`
	Language       string `xml:"LANGUAGE"`
	Organization   string `xml:"FI>ORG"`
	OrganizationID string `xml:"FI>FID"`
	IntuitID       string `xml:"INTU.BID,omitempty"`
}

type Balance struct {
	Amount decimal.Decimal `xml:"BALAMT"`
	Date   string          `xml:"DTASOF"`
}

// Signup message set, the answer to an account information request.

type BankAccountInfo struct {
	BankID      string `xml:"BANKACCTFROM>BANKID"`
	AccountID   string `xml:"BANKACCTFROM>ACCTID"`
	AccountType string `xml:"BANKACCTFROM>ACCTTYPE"`
	Status      string `xml:"SVCSTATUS"`
}

type CreditCardAccountInfo struct {
	AccountID string `xml:"CCACCTFROM>ACCTID"`
	Status    string `xml:"SVCSTATUS"`
}

type AccountInfo struct {
	Description string                 `xml:"DESC"`
	Phone       string                 `xml:"PHONE,omitempty"`
	Bank        *BankAccountInfo       `xml:"BANKACCTINFO"`
	CreditCard  *CreditCardAccountInfo `xml:"CCACCTINFO"`
}

type AccountInfoTransactionResponseSet struct {
	ID       string        `xml:"TRNUID"`
	Code     int           `xml:"STATUS>CODE"`
	Severity string        `xml:"STATUS>SEVERITY"`
	Message  string        `xml:"STATUS>MESSAGE,omitempty"`
	Updated  string        `xml:"ACCTINFORS>DTACCTUP"`
	Accounts []AccountInfo `xml:"ACCTINFORS>ACCTINFO"`
}

type SignupResponseMessageSet struct {
	TRS []AccountInfoTransactionResponseSet `xml:"ACCTINFOTRNRS"`
}

// Bank message set.

type StatementTransactionResponseSet struct {
	ID       string                `xml:"TRNUID"`
	Code     int                   `xml:"STATUS>CODE"`
	Severity string                `xml:"STATUS>SEVERITY"`
	Message  string                `xml:"STATUS>MESSAGE,omitempty"`
	RS       *StatementResponseSet `xml:"STMTRS"`
}

type StatementResponseSet struct {
	Currency         string        `xml:"CURDEF"`
	BankID           string        `xml:"BANKACCTFROM>BANKID"`
	AccountID        string        `xml:"BANKACCTFROM>ACCTID"`
	AccountType      string        `xml:"BANKACCTFROM>ACCTTYPE"`
	StartDate        string        `xml:"BANKTRANLIST>DTSTART"`
	EndDate          string        `xml:"BANKTRANLIST>DTEND"`
	Transactions     []Transaction `xml:"BANKTRANLIST>STMTTRN"`
	LedgerBalance    Balance       `xml:"LEDGERBAL"`
	AvailableBalance Balance       `xml:"AVAILBAL"`
}

type BankResponseMessageSet struct {
	TRS []StatementTransactionResponseSet `xml:"STMTTRNRS"`
}

// Credit card message set.

type CreditCardStatementTransactionResponseSet struct {
	ID       string                          `xml:"TRNUID"`
	Code     int                             `xml:"STATUS>CODE"`
	Severity string                          `xml:"STATUS>SEVERITY"`
	Message  string                          `xml:"STATUS>MESSAGE,omitempty"`
	RS       *CreditCardStatementResponseSet `xml:"CCSTMTRS"`
}

type CreditCardStatementResponseSet struct {
	Currency         string        `xml:"CURDEF"`
	AccountID        string        `xml:"CCACCTFROM>ACCTID"`
	StartDate        string        `xml:"BANKTRANLIST>DTSTART"`
	EndDate          string        `xml:"BANKTRANLIST>DTEND"`
	Transactions     []Transaction `xml:"BANKTRANLIST>STMTTRN"`
	LedgerBalance    Balance       `xml:"LEDGERBAL"`
	AvailableBalance Balance       `xml:"AVAILBAL"`
}

type CreditCardResponseMessageSet struct {
	TRS []CreditCardStatementTransactionResponseSet `xml:"CCSTMTTRNRS"`
}

// Document is a parsed OFX/QFX response.
// This does not implement the complete RFC yet.
type Document struct {
	XMLName          xml.Name                       `xml:"OFX"`
	Response         SignOnResponse                 `xml:"SIGNONMSGSRSV1>SONRS"`
	SURS             []SignupResponseMessageSet     `xml:"SIGNUPMSGSRSV1"`
	BRMS             []BankResponseMessageSet       `xml:"BANKMSGSRSV1"`
	CCRMS            []CreditCardResponseMessageSet `xml:"CREDITCARDMSGSRSV1"`
	TransactionCount int                            `xml:"-"`
}

// NewDocumentFromXML parses the given reader into a Document.
func NewDocumentFromXML(reader io.Reader, cleaner Cleaner) (*Document, error) {
	var (
		document = &Document{} // The parsed document.
		data     []byte        // Buffer to parse raw bytes from the input file.
		err      error
	)

	// Parse raw byte from the source file into data.
	if data, err = io.ReadAll(reader); err != nil {
		return nil, err
	}
	data = preprocessOFXData(data)
	cleanXML, err := cleaner.CleanupXML(data)
	if err != nil {
		return nil, err
	}

	glog.V(3).Infof("cleanXML: %s", cleanXML.String())
	if err = xml.Unmarshal(cleanXML.Bytes(), document); err != nil {
		return nil, err
	}

	matches := txnPattern.FindAllIndex(cleanXML.Bytes(), -1)
	if matches != nil {
		document.TransactionCount = len(matches)
	}
	return document, nil
}

// GetTxns returns all transactions from the OFX document, bank and credit card alike.
func (d *Document) GetTxns() *[]Transaction {
	txns := make([]Transaction, 0)
	for _, b := range d.BRMS {
		for _, trs := range b.TRS {
			if trs.RS != nil {
				txns = append(txns, trs.RS.Transactions...)
			}
		}
	}
	for _, c := range d.CCRMS {
		for _, trs := range c.TRS {
			if trs.RS != nil {
				txns = append(txns, trs.RS.Transactions...)
			}
		}
	}
	return &txns
}
