// Package catalog holds the closed table of message sets ofxkit knows how to
// decode. Tags outside this table are rejected by envelope.Decode.
package catalog

import (
	"sync"

	"github.com/reoring/ofxkit/domain/banking"
	"github.com/reoring/ofxkit/domain/creditcard"
	"github.com/reoring/ofxkit/domain/investment"
	"github.com/reoring/ofxkit/domain/profile"
	"github.com/reoring/ofxkit/domain/seclist"
	"github.com/reoring/ofxkit/domain/signon"
	"github.com/reoring/ofxkit/domain/signup"
	"github.com/reoring/ofxkit/domain/tax1099"
	"github.com/reoring/ofxkit/envelope"
)

// Entries returns the catalog entries in request/response pairs.
func Entries() []envelope.Entry {
	return []envelope.Entry{
		envelope.EntryFor[signon.RequestMessageSet](),
		envelope.EntryFor[signon.ResponseMessageSet](),
		envelope.EntryFor[signup.RequestMessageSet](),
		envelope.EntryFor[signup.ResponseMessageSet](),
		envelope.EntryFor[banking.RequestMessageSet](),
		envelope.EntryFor[banking.ResponseMessageSet](),
		envelope.EntryFor[creditcard.RequestMessageSet](),
		envelope.EntryFor[creditcard.ResponseMessageSet](),
		envelope.EntryFor[investment.RequestMessageSet](),
		envelope.EntryFor[investment.ResponseMessageSet](),
		envelope.EntryFor[seclist.RequestMessageSet](),
		envelope.EntryFor[seclist.ResponseMessageSet](),
		envelope.EntryFor[profile.RequestMessageSet](),
		envelope.EntryFor[profile.ResponseMessageSet](),
		envelope.EntryFor[tax1099.RequestMessageSet](),
		envelope.EntryFor[tax1099.ResponseMessageSet](),
	}
}

var (
	once sync.Once
	reg  *envelope.Registry
)

// Registry returns the shared registry built from Entries.
func Registry() *envelope.Registry {
	once.Do(func() { reg = envelope.MustRegistry(Entries()...) })
	return reg
}
