package ofx

import (
	"fmt"
	"time"
)

// Status is an OFX STATUS aggregate. Code 0 means success.
type Status struct {
	Code     int
	Severity string
	Message  string
}

// OK reports whether the status signals success.
func (s Status) OK() bool {
	return s.Code == 0
}

// Statement is a decoded bank or credit card statement.
type Statement struct {
	Currency         string
	Start            time.Time
	End              time.Time
	Transactions     []Transaction
	LedgerBalance    Balance
	AvailableBalance Balance
}

// Account is one account in a decoded response. Statement is nil for account
// information responses and for statement responses the server refused.
type Account struct {
	ID          string
	BankID      string
	Type        string
	Description string
	Status      Status
	Statement   *Statement
}

// Response is a decoded OFX response: the sign-on status and the accounts it carries.
type Response struct {
	SignOn   Status
	Accounts []Account
	// HasAccountInfo is set when the response carried a signup account information set.
	HasAccountInfo bool
}

// Flatten flattens the document into accounts, reading dates without an offset in loc.
func (d *Document) Flatten(loc *time.Location) (*Response, error) {
	r := &Response{
		SignOn: Status{Code: d.Response.Code, Severity: d.Response.Severity, Message: d.Response.Message},
	}

	for _, su := range d.SURS {
		for _, trs := range su.TRS {
			r.HasAccountInfo = true
			status := Status{Code: trs.Code, Severity: trs.Severity, Message: trs.Message}
			for _, info := range trs.Accounts {
				a := Account{Description: info.Description, Status: status}
				switch {
				case info.Bank != nil:
					a.ID = info.Bank.AccountID
					a.BankID = info.Bank.BankID
					a.Type = info.Bank.AccountType
				case info.CreditCard != nil:
					a.ID = info.CreditCard.AccountID
					a.Type = "CREDITCARD"
				default:
					// Investment and bill pay accounts are not supported.
					continue
				}
				r.Accounts = append(r.Accounts, a)
			}
		}
	}

	for _, b := range d.BRMS {
		for _, trs := range b.TRS {
			a := Account{Status: Status{Code: trs.Code, Severity: trs.Severity, Message: trs.Message}}
			if rs := trs.RS; rs != nil {
				a.ID, a.BankID, a.Type = rs.AccountID, rs.BankID, rs.AccountType
				s, err := newStatement(rs.Currency, rs.StartDate, rs.EndDate, loc)
				if err != nil {
					return nil, fmt.Errorf("error - statement for account in transaction %s: %w", trs.ID, err)
				}
				s.Transactions = append([]Transaction{}, rs.Transactions...)
				s.LedgerBalance, s.AvailableBalance = rs.LedgerBalance, rs.AvailableBalance
				a.Statement = s
			}
			r.Accounts = append(r.Accounts, a)
		}
	}

	for _, c := range d.CCRMS {
		for _, trs := range c.TRS {
			a := Account{Type: "CREDITCARD", Status: Status{Code: trs.Code, Severity: trs.Severity, Message: trs.Message}}
			if rs := trs.RS; rs != nil {
				a.ID = rs.AccountID
				s, err := newStatement(rs.Currency, rs.StartDate, rs.EndDate, loc)
				if err != nil {
					return nil, fmt.Errorf("error - statement for account in transaction %s: %w", trs.ID, err)
				}
				s.Transactions = append([]Transaction{}, rs.Transactions...)
				s.LedgerBalance, s.AvailableBalance = rs.LedgerBalance, rs.AvailableBalance
				a.Statement = s
			}
			r.Accounts = append(r.Accounts, a)
		}
	}
	return r, nil
}

func newStatement(currency, start, end string, loc *time.Location) (*Statement, error) {
	s := &Statement{Currency: currency}
	var err error
	if s.Start, err = parseOptionalDate(start, loc); err != nil {
		return nil, err
	}
	if s.End, err = parseOptionalDate(end, loc); err != nil {
		return nil, err
	}
	return s, nil
}
