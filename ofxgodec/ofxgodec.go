// Package ofxgodec adapts github.com/aclindsa/ofxgo to the ofxconnect Decoder interface.
//
// ofxgo validates responses strictly and copes with OFX 2.x XML, while the ofx
// package is lenient with SGML that omits closing tags. Pick whichever the
// institution's server agrees with.
package ofxgodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/rockstardevs/ofxconnect/ofx"
)

// Decoder decodes responses with ofxgo.ParseResponse.
type Decoder struct{}

// NewDecoder returns an ofxgo backed Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode implements ofxconnect.Decoder.
func (d *Decoder) Decode(data []byte) (*ofx.Response, error) {
	parsed, err := ofxgo.ParseResponse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	r := &ofx.Response{SignOn: status(parsed.Signon.Status)}

	for _, msg := range parsed.Signup {
		info, ok := msg.(*ofxgo.AcctInfoResponse)
		if !ok {
			continue
		}
		r.HasAccountInfo = true
		for _, a := range info.AcctInfo {
			account := ofx.Account{Description: string(a.Desc), Status: status(info.Status)}
			switch {
			case a.BankAcctInfo != nil:
				account.ID = string(a.BankAcctInfo.BankAcctFrom.AcctID)
				account.BankID = string(a.BankAcctInfo.BankAcctFrom.BankID)
				account.Type = a.BankAcctInfo.BankAcctFrom.AcctType.String()
			case a.CCAcctInfo != nil:
				account.ID = string(a.CCAcctInfo.CCAcctFrom.AcctID)
				account.Type = "CREDITCARD"
			default:
				continue
			}
			r.Accounts = append(r.Accounts, account)
		}
	}

	for _, msg := range parsed.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		s, err := statement(stmt.CurDef.String(), stmt.BankTranList, stmt.BalAmt, stmt.DtAsOf, stmt.AvailBalAmt, stmt.AvailDtAsOf)
		if err != nil {
			return nil, err
		}
		r.Accounts = append(r.Accounts, ofx.Account{
			ID:        string(stmt.BankAcctFrom.AcctID),
			BankID:    string(stmt.BankAcctFrom.BankID),
			Type:      stmt.BankAcctFrom.AcctType.String(),
			Status:    status(stmt.Status),
			Statement: s,
		})
	}

	for _, msg := range parsed.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		s, err := statement(stmt.CurDef.String(), stmt.BankTranList, stmt.BalAmt, stmt.DtAsOf, stmt.AvailBalAmt, stmt.AvailDtAsOf)
		if err != nil {
			return nil, err
		}
		r.Accounts = append(r.Accounts, ofx.Account{
			ID:        string(stmt.CCAcctFrom.AcctID),
			Type:      "CREDITCARD",
			Status:    status(stmt.Status),
			Statement: s,
		})
	}
	return r, nil
}

func status(s ofxgo.Status) ofx.Status {
	return ofx.Status{Code: int(s.Code), Severity: string(s.Severity), Message: string(s.Message)}
}

func statement(currency string, list *ofxgo.TransactionList, ledger ofxgo.Amount, ledgerAsOf ofxgo.Date,
	avail *ofxgo.Amount, availAsOf *ofxgo.Date) (*ofx.Statement, error) {
	s := &ofx.Statement{Currency: currency, Transactions: []ofx.Transaction{}}
	if list == nil {
		return nil, errors.New("error - statement without BANKTRANLIST")
	}
	s.Start, s.End = list.DtStart.Time, list.DtEnd.Time

	var err error
	if s.LedgerBalance.Amount, err = amount(ledger); err != nil {
		return nil, err
	}
	s.LedgerBalance.Date = ofx.FormatDateTime(ledgerAsOf.Time)
	if avail != nil {
		if s.AvailableBalance.Amount, err = amount(*avail); err != nil {
			return nil, err
		}
	}
	if availAsOf != nil {
		s.AvailableBalance.Date = ofx.FormatDateTime(availAsOf.Time)
	}

	for _, t := range list.Transactions {
		amt, err := amount(t.TrnAmt)
		if err != nil {
			return nil, fmt.Errorf("error - transaction %s: %w", t.FiTID, err)
		}
		txn := ofx.Transaction{
			Type:   ofx.TransactionType(t.TrnType.String()),
			Posted: ofx.FormatDateTime(t.DtPosted.Time),
			Amount: amt,
			ID:     string(t.FiTID),
			Name:   string(t.Name),
			Memo:   string(t.Memo),
		}
		if t.DtUser != nil {
			txn.Date = ofx.FormatDateTime(t.DtUser.Time)
		}
		if t.Payee != nil {
			txn.Payee = string(t.Payee.Name)
		}
		s.Transactions = append(s.Transactions, txn)
	}
	return s, nil
}

func amount(a ofxgo.Amount) (decimal.Decimal, error) {
	return decimal.NewFromString(a.String())
}
