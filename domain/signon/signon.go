// Package signon declares the SIGNONMSGSRQV1/RSV1 message sets.
package signon

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

// FinancialInstitution identifies the FI a user signs on to.
type FinancialInstitution struct {
	Organization string
	ID           *string
}

func (FinancialInstitution) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[FinancialInstitution]("FI",
		dsl.Element("ORG", 0, codec.KeyString, func(f *FinancialInstitution) *string { return &f.Organization }).Required(),
		dsl.Optional("FID", 10, codec.KeyString, func(f *FinancialInstitution) **string { return &f.ID }),
	).MustBuild()
}

// Request is SONRQ.
type Request struct {
	ClientTime    codec.DateTime
	UserID        string
	Password      string
	UserKey       *string
	GenUserKey    *bool
	Language      string
	Institution   *FinancialInstitution
	SessionCookie *string
	AppID         string
	AppVersion    string
	ClientUID     *string
}

func (Request) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Request]("SONRQ",
		dsl.Element("DTCLIENT", 0, codec.KeyDateTime, func(r *Request) *codec.DateTime { return &r.ClientTime }).Required(),
		dsl.Element("USERID", 10, codec.KeyString, func(r *Request) *string { return &r.UserID }).Required(),
		dsl.Element("USERPASS", 20, codec.KeyString, func(r *Request) *string { return &r.Password }).Required(),
		dsl.Optional("USERKEY", 30, codec.KeyString, func(r *Request) **string { return &r.UserKey }),
		dsl.Optional("GENUSERKEY", 40, codec.KeyBoolYN, func(r *Request) **bool { return &r.GenUserKey }),
		dsl.Element("LANGUAGE", 50, codec.KeyString, func(r *Request) *string { return &r.Language }).Required(),
		dsl.OptionalChild(60, func(r *Request) **FinancialInstitution { return &r.Institution }),
		dsl.Optional("SESSCOOKIE", 70, codec.KeyString, func(r *Request) **string { return &r.SessionCookie }),
		dsl.Element("APPID", 80, codec.KeyString, func(r *Request) *string { return &r.AppID }).Required(),
		dsl.Element("APPVER", 90, codec.KeyString, func(r *Request) *string { return &r.AppVersion }).Required(),
		dsl.Optional("CLIENTUID", 100, codec.KeyString, func(r *Request) **string { return &r.ClientUID }),
	).MustBuild()
}

// Response is SONRS.
type Response struct {
	Status         envelope.Status
	ServerTime     codec.DateTime
	UserKey        *string
	UserKeyExpires *codec.DateTime
	Language       string
	ProfileUpdated *codec.DateTime
	AccountUpdated *codec.DateTime
	Institution    *FinancialInstitution
	SessionCookie  *string
	AccessKey      *string
}

func (Response) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Response]("SONRS",
		dsl.Child(0, func(r *Response) *envelope.Status { return &r.Status }).Required(),
		dsl.Element("DTSERVER", 10, codec.KeyDateTime, func(r *Response) *codec.DateTime { return &r.ServerTime }).Required(),
		dsl.Optional("USERKEY", 20, codec.KeyString, func(r *Response) **string { return &r.UserKey }),
		dsl.Optional("TSKEYEXPIRE", 30, codec.KeyDateTime, func(r *Response) **codec.DateTime { return &r.UserKeyExpires }),
		dsl.Element("LANGUAGE", 40, codec.KeyString, func(r *Response) *string { return &r.Language }).Required(),
		dsl.Optional("DTPROFUP", 50, codec.KeyDateTime, func(r *Response) **codec.DateTime { return &r.ProfileUpdated }),
		dsl.Optional("DTACCTUP", 60, codec.KeyDateTime, func(r *Response) **codec.DateTime { return &r.AccountUpdated }),
		dsl.OptionalChild(70, func(r *Response) **FinancialInstitution { return &r.Institution }),
		dsl.Optional("SESSCOOKIE", 80, codec.KeyString, func(r *Response) **string { return &r.SessionCookie }),
		dsl.Optional("ACCESSKEY", 90, codec.KeyString, func(r *Response) **string { return &r.AccessKey }),
	).MustBuild()
}

// RequestMessageSet is SIGNONMSGSRQV1. Sign-on is not wrapped in a
// transaction, so it reports none.
type RequestMessageSet struct {
	Signon Request
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("SIGNONMSGSRQV1",
		dsl.Child(0, func(m *RequestMessageSet) *Request { return &m.Signon }).Required(),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Signon }

func (*RequestMessageSet) Transactions() []envelope.Transaction { return nil }

// ResponseMessageSet is SIGNONMSGSRSV1.
type ResponseMessageSet struct {
	Signon Response
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("SIGNONMSGSRSV1",
		dsl.Child(0, func(m *ResponseMessageSet) *Response { return &m.Signon }).Required(),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Signon }

func (*ResponseMessageSet) Transactions() []envelope.Transaction { return nil }
