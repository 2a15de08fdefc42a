package ofxconnect

import (
	"bytes"
	"time"

	"github.com/rockstardevs/ofxconnect/ofx"
)

const (
	uidLength = 32

	// epoch asks the server for every account, whatever its last update.
	epoch = "19700101000000"
)

// MessageBuilder assembles request documents for one Identity. Every transaction it
// wraps consumes a fresh TRNUID and the next cookie from its SessionCounter.
type MessageBuilder struct {
	identity Identity
	tokens   TokenGenerator
	cookies  *SessionCounter

	// CompatIncludeTag closes INCLUDE in bank statement requests with </DTSTART>,
	// which a few servers have come to expect.
	CompatIncludeTag bool
}

// NewMessageBuilder returns a MessageBuilder. identity should already carry its defaults.
func NewMessageBuilder(identity Identity, tokens TokenGenerator, cookies *SessionCounter) *MessageBuilder {
	return &MessageBuilder{identity: identity, tokens: tokens, cookies: cookies}
}

// Header returns the key:value header block, blank separator line included.
func (b *MessageBuilder) Header() (string, error) {
	uid, err := b.tokens.Generate(uidLength)
	if err != nil {
		return "", err
	}
	fields := [][2]string{
		{"OFXHEADER", "100"},
		{"DATA", "OFXSGML"},
		{"VERSION", b.identity.OFXVersion},
		{"SECURITY", "NONE"},
		{"ENCODING", "USASCII"},
		{"CHARSET", "1252"},
		{"COMPRESSION", "NONE"},
		{"OLDFILEUID", "NONE"},
		{"NEWFILEUID", uid},
	}
	var buf bytes.Buffer
	for _, f := range fields {
		buf.WriteString(f[0])
		buf.WriteByte(':')
		buf.WriteString(f[1])
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	return buf.String(), nil
}

// SignOn returns the SIGNONMSGSRQV1 aggregate. CLIENTUID is only sent from
// protocol version 103 on.
func (b *MessageBuilder) SignOn(now time.Time) string {
	var buf bytes.Buffer
	ofx.WriteStartTag(&buf, "SIGNONMSGSRQV1")
	ofx.WriteStartTag(&buf, "SONRQ")
	ofx.WriteElement(&buf, "DTCLIENT", ofx.FormatDateTime(now))
	ofx.WriteElement(&buf, "USERID", b.identity.User)
	ofx.WriteElement(&buf, "USERPASS", b.identity.Password)
	ofx.WriteElement(&buf, "LANGUAGE", "ENG")
	ofx.WriteStartTag(&buf, "FI")
	ofx.WriteElement(&buf, "ORG", b.identity.Org)
	ofx.WriteElement(&buf, "FID", b.identity.FID)
	ofx.WriteEndTag(&buf, "FI")
	ofx.WriteElement(&buf, "APPID", b.identity.AppID)
	ofx.WriteElement(&buf, "APPVER", b.identity.AppVersion)
	if b.identity.needsClientUID() {
		ofx.WriteElement(&buf, "CLIENTUID", b.identity.ClientUID)
	}
	ofx.WriteEndTag(&buf, "SONRQ")
	ofx.WriteEndTag(&buf, "SIGNONMSGSRQV1")
	return buf.String()
}

// WrapTransaction wraps body in <{messageSet}MSGSRQV1><{transaction}TRNRQ> with a new
// TRNUID and CLTCOOKIE. The cookie is consumed even if the request is never sent.
func (b *MessageBuilder) WrapTransaction(messageSet, transaction, body string) (string, error) {
	uid, err := b.tokens.Generate(uidLength)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	ofx.WriteStartTag(&buf, messageSet+"MSGSRQV1")
	ofx.WriteStartTag(&buf, transaction+"TRNRQ")
	ofx.WriteElement(&buf, "TRNUID", uid)
	ofx.WriteElement(&buf, "CLTCOOKIE", b.cookies.Next())
	buf.WriteString(body)
	ofx.WriteEndTag(&buf, transaction+"TRNRQ")
	ofx.WriteEndTag(&buf, messageSet+"MSGSRQV1")
	return buf.String(), nil
}

// AccountsRequest returns a wrapped ACCTINFORQ for every account.
func (b *MessageBuilder) AccountsRequest() (string, error) {
	var buf bytes.Buffer
	ofx.WriteStartTag(&buf, "ACCTINFORQ")
	ofx.WriteElement(&buf, "DTACCTUP", epoch)
	ofx.WriteEndTag(&buf, "ACCTINFORQ")
	return b.WrapTransaction("SIGNUP", "ACCTINFO", buf.String())
}

// BankStatementRequest returns a wrapped STMTRQ for transactions posted since now - days.
func (b *MessageBuilder) BankStatementRequest(bankID, accountID string, accountType AccountType, days int, now time.Time) (string, error) {
	var buf bytes.Buffer
	ofx.WriteStartTag(&buf, "STMTRQ")
	ofx.WriteStartTag(&buf, "BANKACCTFROM")
	ofx.WriteElement(&buf, "BANKID", bankID)
	ofx.WriteElement(&buf, "ACCTID", accountID)
	ofx.WriteElement(&buf, "ACCTTYPE", string(accountType))
	ofx.WriteEndTag(&buf, "BANKACCTFROM")
	writeIncludeTransactions(&buf, days, now, b.CompatIncludeTag)
	ofx.WriteEndTag(&buf, "STMTRQ")
	return b.WrapTransaction("BANK", "STMT", buf.String())
}

// CreditCardStatementRequest returns a wrapped CCSTMTRQ for transactions posted since now - days.
func (b *MessageBuilder) CreditCardStatementRequest(accountID string, days int, now time.Time) (string, error) {
	var buf bytes.Buffer
	ofx.WriteStartTag(&buf, "CCSTMTRQ")
	ofx.WriteStartTag(&buf, "CCACCTFROM")
	ofx.WriteElement(&buf, "ACCTID", accountID)
	ofx.WriteEndTag(&buf, "CCACCTFROM")
	writeIncludeTransactions(&buf, days, now, false)
	ofx.WriteEndTag(&buf, "CCSTMTRQ")
	return b.WrapTransaction("CREDITCARD", "CCSTMT", buf.String())
}

func writeIncludeTransactions(buf *bytes.Buffer, days int, now time.Time, compat bool) {
	ofx.WriteStartTag(buf, "INCTRAN")
	ofx.WriteElement(buf, "DTSTART", ofx.FormatDate(now.AddDate(0, 0, -days)))
	if compat {
		ofx.WriteStartTag(buf, "INCLUDE")
		buf.WriteString("Y")
		ofx.WriteEndTag(buf, "DTSTART")
	} else {
		ofx.WriteElement(buf, "INCLUDE", "Y")
	}
	ofx.WriteEndTag(buf, "INCTRAN")
}

// Document returns header + <OFX> + sign-on + body + </OFX>.
func (b *MessageBuilder) Document(now time.Time, body string) ([]byte, error) {
	header, err := b.Header()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(header)
	ofx.WriteStartTag(&buf, "OFX")
	buf.WriteString(b.SignOn(now))
	buf.WriteString(body)
	ofx.WriteEndTag(&buf, "OFX")
	return buf.Bytes(), nil
}
