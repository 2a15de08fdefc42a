package ofxconnect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/rockstardevs/ofxconnect/ofx"
)

// DefaultStatementDays is the statement window used when a query leaves Days unset.
const DefaultStatementDays = 60

// StatementQuery selects the account and window for GetStatement. Empty account
// fields fall back to the client's Identity.
type StatementQuery struct {
	AccountType AccountType
	AccountID   string
	BankID      string
	Days        int
}

// Client issues OFX requests for one Identity. It keeps no state between calls but
// its cookie counter, and is safe for concurrent use.
type Client struct {
	identity   Identity
	builder    *MessageBuilder
	dispatcher Dispatcher
	decoder    Decoder
	now        func() time.Time
}

type options struct {
	dispatcher Dispatcher
	decoder    Decoder
	tokens     TokenGenerator
	now        func() time.Time
	compat     bool
}

// Option configures a Client.
type Option func(*options)

// WithDispatcher replaces the default HTTPDispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithDecoder replaces the default ofx.Decoder.
func WithDecoder(d Decoder) Option {
	return func(o *options) { o.decoder = d }
}

// WithTokenGenerator replaces the crypto/rand token generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(o *options) { o.tokens = g }
}

// WithClock replaces time.Now for DTCLIENT and statement windows.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIncludeTagCompat makes bank statement requests close INCLUDE with </DTSTART>.
func WithIncludeTagCompat() Option {
	return func(o *options) { o.compat = true }
}

// NewClient validates identity and returns a Client for it.
func NewClient(identity Identity, opts ...Option) (*Client, error) {
	identity = identity.WithDefaults()
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	o := &options{
		dispatcher: NewHTTPDispatcher(nil, ""),
		decoder:    ofx.NewDecoder(),
		tokens:     NewTokenGenerator(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	builder := NewMessageBuilder(identity, o.tokens, NewSessionCounter())
	builder.CompatIncludeTag = o.compat
	return &Client{
		identity:   identity,
		builder:    builder,
		dispatcher: o.dispatcher,
		decoder:    o.decoder,
		now:        o.now,
	}, nil
}

// Identity returns a copy of the client's identity.
func (c *Client) Identity() Identity {
	return c.identity
}

// ListAccounts returns every account the institution reports for the user.
func (c *Client) ListAccounts(ctx context.Context) ([]ofx.Account, error) {
	const op = "account list"
	body, err := c.builder.AccountsRequest()
	if err != nil {
		return nil, err
	}
	resp, err := c.roundTrip(ctx, op, body)
	if err != nil {
		return nil, err
	}
	if !resp.HasAccountInfo {
		return nil, &DecodeError{Operation: op, Err: ErrNoAccountInfo}
	}
	for _, a := range resp.Accounts {
		if !a.Status.OK() {
			return nil, statusError(op, a.Status)
		}
	}
	accounts := make([]ofx.Account, len(resp.Accounts))
	copy(accounts, resp.Accounts)
	return accounts, nil
}

// GetStatement returns the statement of one bank or credit card account. Only the
// first account in the response is considered.
func (c *Client) GetStatement(ctx context.Context, q StatementQuery) (*ofx.Statement, error) {
	q, err := c.resolve(q)
	if err != nil {
		return nil, err
	}

	var (
		op   string
		body string
		now  = c.now()
	)
	if q.AccountType == CreditCard {
		op = "credit card statement"
		body, err = c.builder.CreditCardStatementRequest(q.AccountID, q.Days, now)
	} else {
		op = "bank statement"
		body, err = c.builder.BankStatementRequest(q.BankID, q.AccountID, q.AccountType, q.Days, now)
	}
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(ctx, op, body)
	if err != nil {
		return nil, err
	}
	if len(resp.Accounts) == 0 {
		return nil, &DecodeError{Operation: op, Err: ErrNoStatement}
	}
	account := resp.Accounts[0]
	if !account.Status.OK() {
		return nil, statusError(op, account.Status)
	}
	if account.Statement == nil {
		return nil, &DecodeError{Operation: op, Err: ErrNoStatement}
	}
	return account.Statement, nil
}

// resolve fills q from the identity and validates it.
func (c *Client) resolve(q StatementQuery) (StatementQuery, error) {
	if q.AccountID == "" {
		q.AccountID = c.identity.AccountID
		if q.AccountType == "" {
			q.AccountType = c.identity.AccountType
		}
	}
	if q.BankID == "" {
		q.BankID = c.identity.BankID
	}
	switch {
	case q.Days < 0:
		return q, &ConfigError{Field: "Days", Reason: "must not be negative"}
	case q.Days == 0:
		q.Days = DefaultStatementDays
	}
	if q.AccountID == "" {
		return q, &ConfigError{Field: "AccountID", Reason: "must not be empty"}
	}
	t, err := ParseAccountType(string(q.AccountType))
	if err != nil {
		return q, err
	}
	q.AccountType = t
	if t.IsBank() && q.BankID == "" {
		return q, &ConfigError{Field: "BankID", Reason: "required for " + string(t) + " accounts"}
	}
	return q, nil
}

// roundTrip sends sign-on plus body and decodes the reply. The decoder only sees
// bodies of successful HTTP exchanges.
func (c *Client) roundTrip(ctx context.Context, op, body string) (*ofx.Response, error) {
	document, err := c.builder.Document(c.now(), body)
	if err != nil {
		return nil, err
	}

	glog.V(2).Infof("sending %s request to %s", op, c.identity.URL)
	reply, err := c.dispatcher.Dispatch(ctx, c.identity.URL, document)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &TransportError{URL: c.identity.URL, Err: err}
	}
	if reply == nil {
		return nil, &TransportError{URL: c.identity.URL, Err: errors.New("error - empty reply")}
	}
	if !isSuccess(reply.StatusCode) {
		return nil, &TransportError{URL: c.identity.URL, StatusCode: reply.StatusCode,
			Err: fmt.Errorf("error - unexpected status %d", reply.StatusCode)}
	}

	resp, err := c.decoder.Decode(reply.Body)
	if err != nil {
		return nil, &DecodeError{Operation: op, Err: err}
	}
	if resp == nil {
		return nil, &DecodeError{Operation: op, Err: errors.New("error - decoder returned no response")}
	}
	if !resp.SignOn.OK() {
		return nil, statusError(op, resp.SignOn)
	}
	return resp, nil
}

func statusError(op string, s ofx.Status) error {
	glog.Warningf("%s rejected with OFX status %d (%s)", op, s.Code, s.Severity)
	return &StatusError{Operation: op, Code: s.Code, Severity: s.Severity, Message: s.Message}
}
