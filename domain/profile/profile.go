// Package profile declares the PROFMSGSRQV1/RSV1 message sets, through which
// an FI describes the message sets and sign-on realms it supports.
package profile

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type ClientRouting string

const (
	RoutingNone    ClientRouting = "NONE"
	RoutingService ClientRouting = "SERVICE"
	RoutingMsgSet  ClientRouting = "MSGSET"
)

var KeyClientRouting = codec.Enum("CLIENTROUTING", string(RoutingNone), string(RoutingService), string(RoutingMsgSet))

type CharacterType string

const (
	AlphaOnly       CharacterType = "ALPHAONLY"
	NumericOnly     CharacterType = "NUMERICONLY"
	AlphaOrNumeric  CharacterType = "ALPHAORNUMERIC"
	AlphaAndNumeric CharacterType = "ALPHAANDNUMERIC"
)

var KeyCharacterType = codec.Enum("CHARTYPE",
	string(AlphaOnly), string(NumericOnly), string(AlphaOrNumeric), string(AlphaAndNumeric))

// Request is PROFRQ.
type Request struct {
	Routing     ClientRouting
	ProfileAsOf codec.DateTime
}

func (Request) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Request]("PROFRQ",
		dsl.Element("CLIENTROUTING", 0, KeyClientRouting, func(r *Request) *ClientRouting { return &r.Routing }).Required(),
		dsl.Element("DTPROFUP", 10, codec.KeyDateTime, func(r *Request) *codec.DateTime { return &r.ProfileAsOf }).Required(),
	).MustBuild()
}

// SignonInfo is SIGNONINFO, the password rules of one sign-on realm.
type SignonInfo struct {
	Realm         string
	MinChars      int
	MaxChars      int
	CharType      CharacterType
	CaseSensitive bool
	Special       bool
	Spaces        bool
	PinChange     bool
	ChangeFirst   *bool
}

func (SignonInfo) Describe() *ofxkit.Declaration {
	type t = SignonInfo
	return dsl.Aggregate[t]("SIGNONINFO",
		dsl.Element("SIGNONREALM", 0, codec.KeyString, func(x *t) *string { return &x.Realm }).Required(),
		dsl.Element("MIN", 10, codec.KeyInteger, func(x *t) *int { return &x.MinChars }).Required(),
		dsl.Element("MAX", 20, codec.KeyInteger, func(x *t) *int { return &x.MaxChars }).Required(),
		dsl.Element("CHARTYPE", 30, KeyCharacterType, func(x *t) *CharacterType { return &x.CharType }).Required(),
		dsl.Element("CASESEN", 40, codec.KeyBoolYN, func(x *t) *bool { return &x.CaseSensitive }).Required(),
		dsl.Element("SPECIAL", 50, codec.KeyBoolYN, func(x *t) *bool { return &x.Special }).Required(),
		dsl.Element("SPACES", 60, codec.KeyBoolYN, func(x *t) *bool { return &x.Spaces }).Required(),
		dsl.Element("PINCH", 70, codec.KeyBoolYN, func(x *t) *bool { return &x.PinChange }).Required(),
		dsl.Optional("CHGPINFIRST", 80, codec.KeyBoolYN, func(x *t) **bool { return &x.ChangeFirst }),
	).MustBuild()
}

type SignonInfoList struct {
	Realms []SignonInfo
}

func (SignonInfoList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SignonInfoList]("SIGNONINFOLIST",
		dsl.Children(0, func(l *SignonInfoList) *[]SignonInfo { return &l.Realms }).Required(),
	).MustBuild()
}

// Response is PROFRS.
type Response struct {
	MessageSets  MessageSetList
	Signons      SignonInfoList
	ProfileAsOf  codec.DateTime
	Name         string
	Address1     string
	Address2     *string
	Address3     *string
	City         string
	State        string
	PostalCode   string
	Country      *string
	ServicePhone *string
	TechPhone    *string
	Fax          *string
	URL          *string
	Email        *string
}

func (Response) Describe() *ofxkit.Declaration {
	type t = Response
	return dsl.Aggregate[t]("PROFRS",
		dsl.Child(0, func(x *t) *MessageSetList { return &x.MessageSets }).Required(),
		dsl.Child(10, func(x *t) *SignonInfoList { return &x.Signons }).Required(),
		dsl.Element("DTPROFUP", 20, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.ProfileAsOf }).Required(),
		dsl.Element("FINAME", 30, codec.KeyString, func(x *t) *string { return &x.Name }).Required(),
		dsl.Element("ADDR1", 40, codec.KeyString, func(x *t) *string { return &x.Address1 }).Required(),
		dsl.Optional("ADDR2", 50, codec.KeyString, func(x *t) **string { return &x.Address2 }),
		dsl.Optional("ADDR3", 60, codec.KeyString, func(x *t) **string { return &x.Address3 }),
		dsl.Element("CITY", 70, codec.KeyString, func(x *t) *string { return &x.City }).Required(),
		dsl.Element("STATE", 80, codec.KeyString, func(x *t) *string { return &x.State }).Required(),
		dsl.Element("POSTALCODE", 90, codec.KeyString, func(x *t) *string { return &x.PostalCode }).Required(),
		dsl.Optional("COUNTRY", 100, codec.KeyString, func(x *t) **string { return &x.Country }),
		dsl.Optional("CSPHONE", 110, codec.KeyString, func(x *t) **string { return &x.ServicePhone }),
		dsl.Optional("TSPHONE", 120, codec.KeyString, func(x *t) **string { return &x.TechPhone }),
		dsl.Optional("FAXPHONE", 130, codec.KeyString, func(x *t) **string { return &x.Fax }),
		dsl.Optional("URL", 140, codec.KeyString, func(x *t) **string { return &x.URL }),
		dsl.Optional("EMAIL", 150, codec.KeyString, func(x *t) **string { return &x.Email }),
	).MustBuild()
}

type TransactionRequest struct {
	envelope.RequestWrapper
	Message Request
}

func (TransactionRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[TransactionRequest]("PROFTRNRQ",
		dsl.Embed(func(x *TransactionRequest) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *TransactionRequest) *Request { return &x.Message }).Required(),
	).MustBuild()
}

type TransactionResponse struct {
	envelope.ResponseWrapper
	Message *Response
}

func (TransactionResponse) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[TransactionResponse]("PROFTRNRS",
		dsl.Embed(func(x *TransactionResponse) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *TransactionResponse) **Response { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is PROFMSGSRQV1. It carries exactly one transaction.
type RequestMessageSet struct {
	Profile TransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("PROFMSGSRQV1",
		dsl.Child(0, func(m *RequestMessageSet) *TransactionRequest { return &m.Profile }).Required(),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Profile }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return []envelope.Transaction{&m.Profile}
}

// ResponseMessageSet is PROFMSGSRSV1.
type ResponseMessageSet struct {
	Profile TransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("PROFMSGSRSV1",
		dsl.Child(0, func(m *ResponseMessageSet) *TransactionResponse { return &m.Profile }).Required(),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Profile }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return []envelope.Transaction{&m.Profile}
}
