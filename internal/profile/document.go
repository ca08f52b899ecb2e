// Package profile reads and writes the external launcher's account
// registry (accounts.json). The JSON field names and layout are an
// external contract: the launcher itself parses this file, so they
// must match its schema exactly.
package profile

import (
	"github.com/meowcraft/launcher/internal/model"
)

// FormatVersion is the accounts.json schema version the external
// launcher expects.
const FormatVersion = 3

// Document is the full persisted account registry
type Document struct {
	Accounts        []Entry `json:"accounts"`
	ActiveAccount   string  `json:"activeAccount,omitempty"`
	LastUsedAccount string  `json:"lastUsedAccount,omitempty"`
	FormatVersion   int     `json:"formatVersion"`
}

// Entry is one account in the registry
type Entry struct {
	Type        string      `json:"type"`
	Entitlement Entitlement `json:"entitlement"`
	Profile     Profile     `json:"profile"`
	Ygg         Ygg         `json:"ygg"`
}

// Entitlement describes what the account is allowed to play
type Entitlement struct {
	CanPlayMinecraft bool `json:"canPlayMinecraft"`
	OwnsMinecraft    bool `json:"ownsMinecraft"`
}

// Profile is the account's player profile
type Profile struct {
	Capes []string `json:"capes"`
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Skin  Skin     `json:"skin"`
}

// Skin is required by the external launcher even when empty
type Skin struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Variant string `json:"variant"`
}

// Ygg carries the Yggdrasil auth data block
type Ygg struct {
	Extra YggExtra `json:"extra"`
	IAT   int64    `json:"iat"`
	Token string   `json:"token"`
}

// YggExtra is the nested client token block
type YggExtra struct {
	ClientToken string `json:"clientToken"`
	UserName    string `json:"userName"`
}

// NewDocument returns an empty registry at the current format version
func NewDocument() *Document {
	return &Document{
		Accounts:      []Entry{},
		FormatVersion: FormatVersion,
	}
}

// Upsert inserts the record or replaces the entry with the same
// identity id. With makeActive, both the active and last-used pointers
// move to this record, implicitly deactivating any previous account.
func (d *Document) Upsert(record model.AccountRecord, makeActive bool) {
	entry := entryFromRecord(record)

	replaced := false
	for i := range d.Accounts {
		if d.Accounts[i].Profile.ID == string(record.IdentityID) {
			d.Accounts[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		d.Accounts = append(d.Accounts, entry)
	}

	if makeActive {
		d.ActiveAccount = string(record.IdentityID)
		d.LastUsedAccount = string(record.IdentityID)
	}
}

// ActiveEntry returns the entry the active pointer references, or nil
func (d *Document) ActiveEntry() *Entry {
	if d.ActiveAccount == "" {
		return nil
	}
	for i := range d.Accounts {
		if d.Accounts[i].Profile.ID == d.ActiveAccount {
			return &d.Accounts[i]
		}
	}
	return nil
}

func entryFromRecord(record model.AccountRecord) Entry {
	entry := Entry{
		Type: string(record.Kind),
		Entitlement: Entitlement{
			CanPlayMinecraft: true,
			OwnsMinecraft:    record.Kind == model.AccountFederated,
		},
		Profile: Profile{
			Capes: []string{},
			ID:    string(record.IdentityID),
			Name:  record.DisplayName,
		},
		Ygg: Ygg{
			Extra: YggExtra{
				ClientToken: string(record.IdentityID),
				UserName:    record.DisplayName,
			},
			IAT: record.IssuedAt.Unix(),
		},
	}

	switch record.Kind {
	case model.AccountFederated:
		entry.Profile.Skin.Variant = "classic"
		entry.Ygg.Token = record.Credential
	default:
		// Offline accounts carry a placeholder token
		entry.Ygg.Token = "0"
	}
	return entry
}
