package ofxconnect

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// AccountType is an OFX ACCTTYPE value, or CREDITCARD for card accounts.
type AccountType string

const (
	Checking    AccountType = "CHECKING"
	Savings     AccountType = "SAVINGS"
	MoneyMarket AccountType = "MONEYMRKT"
	CreditLine  AccountType = "CREDITLINE"
	CD          AccountType = "CD"
	CreditCard  AccountType = "CREDITCARD"
)

var accountTypes = map[AccountType]struct{}{
	Checking: {}, Savings: {}, MoneyMarket: {}, CreditLine: {}, CD: {}, CreditCard: {},
}

// ParseAccountType returns the AccountType named by s, ignoring case.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := accountTypes[t]; !ok {
		return "", &ConfigError{Field: "AccountType", Reason: fmt.Sprintf("unsupported account type %q", s)}
	}
	return t, nil
}

// IsBank reports whether t is a bank account type, identified by routing and account id.
func (t AccountType) IsBank() bool {
	return t != CreditCard
}

const (
	// DefaultAppID is Quicken for Windows. Many servers reject unknown applications.
	DefaultAppID = "QWIN"
	// DefaultAppVersion identifies Quicken 2017.
	DefaultAppVersion = "2700"
	// DefaultOFXVersion is OFX 1.0.2.
	DefaultOFXVersion = "102"

	// clientUIDVersion is the first protocol version carrying CLIENTUID.
	clientUIDVersion = 103
)

var supportedVersions = map[string]struct{}{
	"102": {}, "103": {}, "151": {}, "160": {},
}

// Identity is everything needed to sign on to one institution. AccountID, AccountType
// and BankID select the default account for GetStatement.
type Identity struct {
	FID         string
	Org         string
	URL         string
	User        string
	Password    string
	ClientUID   string
	BankID      string
	AccountID   string
	AccountType AccountType
	AppID       string
	AppVersion  string
	OFXVersion  string
}

// WithDefaults returns a copy of i with empty application and protocol fields
// set to their defaults and the account type upper cased.
func (i Identity) WithDefaults() Identity {
	if i.AppID == "" {
		i.AppID = DefaultAppID
	}
	if i.AppVersion == "" {
		i.AppVersion = DefaultAppVersion
	}
	if i.OFXVersion == "" {
		i.OFXVersion = DefaultOFXVersion
	}
	i.AccountType = AccountType(strings.ToUpper(string(i.AccountType)))
	return i
}

// Validate checks every field eagerly and returns the first problem as a ConfigError.
func (i Identity) Validate() error {
	required := []struct{ field, value string }{
		{"FID", i.FID}, {"Org", i.Org}, {"URL", i.URL}, {"User", i.User}, {"Password", i.Password},
		{"AppID", i.AppID}, {"AppVersion", i.AppVersion}, {"OFXVersion", i.OFXVersion},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Field: r.field, Reason: "must not be empty"}
		}
	}

	u, err := url.Parse(i.URL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return &ConfigError{Field: "URL", Reason: "must be an absolute http or https URL"}
	}
	if _, ok := supportedVersions[i.OFXVersion]; !ok {
		return &ConfigError{Field: "OFXVersion", Reason: fmt.Sprintf("unsupported protocol version %q", i.OFXVersion)}
	}
	if _, err := strconv.Atoi(i.AppVersion); err != nil || len(i.AppVersion) != 4 {
		return &ConfigError{Field: "AppVersion", Reason: "must be four digits"}
	}
	if i.needsClientUID() && i.ClientUID == "" {
		return &ConfigError{Field: "ClientUID", Reason: "required for protocol version " + i.OFXVersion}
	}
	if i.AccountType != "" {
		if _, err := ParseAccountType(string(i.AccountType)); err != nil {
			return err
		}
	}
	return nil
}

func (i Identity) needsClientUID() bool {
	v, err := strconv.Atoi(i.OFXVersion)
	return err == nil && v >= clientUIDVersion
}

// String implements fmt.Stringer without the password.
func (i Identity) String() string {
	return fmt.Sprintf("Identity{FID:%s Org:%s URL:%s User:%s Password:%s AccountType:%s AppID:%s AppVersion:%s OFXVersion:%s}",
		i.FID, i.Org, i.URL, i.User, redacted(i.Password), i.AccountType, i.AppID, i.AppVersion, i.OFXVersion)
}

// GoString implements fmt.GoStringer so %#v doesn't print the password either.
func (i Identity) GoString() string {
	return i.String()
}

func redacted(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
