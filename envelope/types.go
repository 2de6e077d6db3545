package envelope

import (
	"fmt"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
)

// Type identifies a message-set family.
type Type int

const (
	Signon Type = iota
	Signup
	Banking
	CreditCard
	Investment
	Interbank    // profile info only
	WireTransfer // reserved
	Billpay      // reserved
	Email        // reserved
	SecurityList
	Profile
	Tax1099
)

var typeNames = [...]string{
	Signon:       "signon",
	Signup:       "signup",
	Banking:      "banking",
	CreditCard:   "creditcard",
	Investment:   "investment",
	Interbank:    "interbank",
	WireTransfer: "wireTransfer",
	Billpay:      "billpay",
	Email:        "email",
	SecurityList: "securityList",
	Profile:      "profile",
	Tax1099:      "tax1099",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// MessageSet is implemented by every top-level child of <OFX>. Concrete
// message sets are used through pointers.
type MessageSet interface {
	ofxkit.Describer
	MessageSetType() Type
	Transactions() []Transaction
}

// Transaction is a request or response wrapped with a transaction UID.
// Domain types get both methods by embedding RequestWrapper or
// ResponseWrapper.
type Transaction interface {
	Request() *RequestWrapper   // nil for responses
	Response() *ResponseWrapper // nil for requests
}

// Collect returns pointers into items as Transactions, for implementing
// MessageSet.Transactions over a slice of wrapper values.
func Collect[T any, PT interface {
	*T
	Transaction
}](items []T) []Transaction {
	out := make([]Transaction, 0, len(items))
	for i := range items {
		out = append(out, PT(&items[i]))
	}
	return out
}

// UID returns the transaction UID of t.
func UID(t Transaction) string {
	if rq := t.Request(); rq != nil {
		return rq.UID
	}
	if rs := t.Response(); rs != nil {
		return rs.UID
	}
	return ""
}

// RequestWrapper holds the fields shared by every *TRNRQ aggregate. The
// wrapped message follows at order 30.
type RequestWrapper struct {
	UID          string
	ClientCookie *string
	TAN          *string
}

func (RequestWrapper) Describe() *ofxkit.Declaration {
	return dsl.Embedded[RequestWrapper](
		dsl.Element("TRNUID", 0, codec.KeyString, func(w *RequestWrapper) *string { return &w.UID }).Required(),
		dsl.Optional("CLTCOOKIE", 10, codec.KeyString, func(w *RequestWrapper) **string { return &w.ClientCookie }),
		dsl.Optional("TAN", 20, codec.KeyString, func(w *RequestWrapper) **string { return &w.TAN }),
	).MustBuild()
}

func (w *RequestWrapper) Request() *RequestWrapper { return w }

func (w *RequestWrapper) Response() *ResponseWrapper { return nil }

// ResponseWrapper holds the fields shared by every *TRNRS aggregate.
type ResponseWrapper struct {
	UID          string
	Status       Status
	ClientCookie *string
}

func (ResponseWrapper) Describe() *ofxkit.Declaration {
	return dsl.Embedded[ResponseWrapper](
		dsl.Element("TRNUID", 0, codec.KeyString, func(w *ResponseWrapper) *string { return &w.UID }).Required(),
		dsl.Child(10, func(w *ResponseWrapper) *Status { return &w.Status }).Required(),
		dsl.Optional("CLTCOOKIE", 20, codec.KeyString, func(w *ResponseWrapper) **string { return &w.ClientCookie }),
	).MustBuild()
}

func (w *ResponseWrapper) Request() *RequestWrapper { return nil }

func (w *ResponseWrapper) Response() *ResponseWrapper { return w }

// StatusSeverity is the SEVERITY literal of a STATUS aggregate.
type StatusSeverity string

const (
	SeverityInfo  StatusSeverity = "INFO"
	SeverityWarn  StatusSeverity = "WARN"
	SeverityError StatusSeverity = "ERROR"
)

// KeyStatusSeverity is the codec key of StatusSeverity.
var KeyStatusSeverity = codec.Enum("SEVERITY", string(SeverityInfo), string(SeverityWarn), string(SeverityError))

// Status reports the outcome of a request.
type Status struct {
	Code     int
	Severity StatusSeverity
	Message  *string
}

func (Status) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Status]("STATUS",
		dsl.Element("CODE", 0, codec.KeyInteger, func(s *Status) *int { return &s.Code }).Required(),
		dsl.Element("SEVERITY", 10, KeyStatusSeverity, func(s *Status) *StatusSeverity { return &s.Severity }).Required(),
		dsl.Optional("MESSAGE", 20, codec.KeyString, func(s *Status) **string { return &s.Message }),
	).MustBuild()
}

// Common status codes.
const (
	CodeSuccess            = 0
	CodeGeneralError       = 2000
	CodeInvalidAccount     = 2003
	CodeInvalidDateRange   = 2014
	CodeMFAChallengeNeeded = 3000
	CodeSignonInvalid      = 15500
)

var statusText = map[int]string{
	CodeSuccess:            "success",
	CodeGeneralError:       "general error",
	CodeInvalidAccount:     "invalid account",
	CodeInvalidDateRange:   "invalid date range",
	CodeSignonInvalid:      "signon invalid",
	CodeMFAChallengeNeeded: "MFA challenge authentication required",
}

// OK reports whether the request succeeded.
func (s Status) OK() bool { return s.Severity != SeverityError }

// Err returns a *StatusError when the severity is ERROR.
func (s Status) Err() error {
	if s.OK() {
		return nil
	}
	return &StatusError{Status: s}
}

// StatusError is a server-reported failure.
type StatusError struct{ Status Status }

func (e *StatusError) Error() string {
	msg := statusText[e.Status.Code]
	if e.Status.Message != nil {
		msg = *e.Status.Message
	}
	if msg == "" {
		msg = "unknown status"
	}
	return fmt.Sprintf("ofx status %d (%s): %s", e.Status.Code, e.Status.Severity, msg)
}
