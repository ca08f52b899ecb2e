package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	dataDir string
	store   *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.dataDir = s.T().TempDir()
	s.store = NewStore(s.dataDir, testutil.NopLogger())
}

func (s *StoreSuite) offlineRecord(name string, id string) model.AccountRecord {
	return model.AccountRecord{
		Kind:        model.AccountAnonymous,
		IdentityID:  model.IdentityID(id),
		DisplayName: name,
		IssuedAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Load tests

func (s *StoreSuite) TestLoadMissingFileReturnsEmptyDocument() {
	doc, err := s.store.Load()
	s.Require().NoError(err)

	s.Empty(doc.Accounts)
	s.Empty(doc.ActiveAccount)
	s.Equal(FormatVersion, doc.FormatVersion)
}

func (s *StoreSuite) TestLoadMalformedFileFails() {
	path := filepath.Join(s.dataDir, AccountsFileName)
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0644))

	_, err := s.store.Load()
	s.ErrorIs(err, ErrCorruptStore)
}

func (s *StoreSuite) TestLoadRoundTrip() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)
	s.Require().NoError(s.store.Save(doc))

	loaded, err := s.store.Load()
	s.Require().NoError(err)

	s.Len(loaded.Accounts, 1)
	s.Equal("Ash", loaded.Accounts[0].Profile.Name)
	s.Equal("id-ash", loaded.ActiveAccount)
	s.Equal("id-ash", loaded.LastUsedAccount)
}

// Upsert tests

func (s *StoreSuite) TestUpsertInsertsNewRecord() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)

	s.Len(doc.Accounts, 1)
	s.Equal("id-ash", doc.Accounts[0].Profile.ID)
	s.Equal("Offline", doc.Accounts[0].Type)
}

func (s *StoreSuite) TestUpsertReplacesMatchingIdentity() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)

	updated := s.offlineRecord("Ash", "id-ash")
	updated.IssuedAt = updated.IssuedAt.Add(time.Hour)
	doc.Upsert(updated, true)

	s.Len(doc.Accounts, 1)
	s.Equal(updated.IssuedAt.Unix(), doc.Accounts[0].Ygg.IAT)
}

func (s *StoreSuite) TestUpsertKeepsAtMostOneActive() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)
	doc.Upsert(s.offlineRecord("Red", "id-red"), true)
	doc.Upsert(s.offlineRecord("Blue", "id-blue"), true)

	s.Len(doc.Accounts, 3)
	s.Equal("id-blue", doc.ActiveAccount)
	s.Equal("id-blue", doc.LastUsedAccount)

	active := doc.ActiveEntry()
	s.Require().NotNil(active)
	s.Equal("Blue", active.Profile.Name)
}

func (s *StoreSuite) TestUpsertWithoutMakeActiveLeavesPointers() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)
	doc.Upsert(s.offlineRecord("Red", "id-red"), false)

	s.Len(doc.Accounts, 2)
	s.Equal("id-ash", doc.ActiveAccount)
}

// Schema tests: the field names are an external contract

func (s *StoreSuite) TestSavedJSONMatchesLauncherSchema() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)
	s.Require().NoError(s.store.Save(doc))

	data, err := os.ReadFile(s.store.Path())
	s.Require().NoError(err)

	var raw map[string]any
	s.Require().NoError(json.Unmarshal(data, &raw))

	s.Contains(raw, "accounts")
	s.Contains(raw, "activeAccount")
	s.Contains(raw, "lastUsedAccount")
	s.Equal(float64(3), raw["formatVersion"])

	accounts := raw["accounts"].([]any)
	s.Require().Len(accounts, 1)
	entry := accounts[0].(map[string]any)

	s.Equal("Offline", entry["type"])

	entitlement := entry["entitlement"].(map[string]any)
	s.Equal(true, entitlement["canPlayMinecraft"])
	s.Equal(false, entitlement["ownsMinecraft"])

	prof := entry["profile"].(map[string]any)
	s.Contains(prof, "capes")
	s.Contains(prof, "skin")
	s.Equal("id-ash", prof["id"])
	s.Equal("Ash", prof["name"])

	skin := prof["skin"].(map[string]any)
	s.Contains(skin, "id")
	s.Contains(skin, "url")
	s.Contains(skin, "variant")

	ygg := entry["ygg"].(map[string]any)
	s.Equal("0", ygg["token"])
	s.Contains(ygg, "iat")
	extra := ygg["extra"].(map[string]any)
	s.Equal("id-ash", extra["clientToken"])
	s.Equal("Ash", extra["userName"])
}

func (s *StoreSuite) TestFederatedEntryOwnsTheGame() {
	record := model.AccountRecord{
		Kind:        model.AccountFederated,
		IdentityID:  "msa-id",
		DisplayName: "AshKetchum",
		Credential:  "bearer-token",
		IssuedAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	doc := NewDocument()
	doc.Upsert(record, true)

	entry := doc.Accounts[0]
	s.Equal("MSA", entry.Type)
	s.True(entry.Entitlement.OwnsMinecraft)
	s.Equal("bearer-token", entry.Ygg.Token)
	s.Equal("classic", entry.Profile.Skin.Variant)
}

// Save tests

func (s *StoreSuite) TestSaveCreatesDirectory() {
	nested := filepath.Join(s.dataDir, "deeper", "still")
	store := NewStore(nested, testutil.NopLogger())

	s.Require().NoError(store.Save(NewDocument()))

	_, err := os.Stat(store.Path())
	s.NoError(err)
}

func (s *StoreSuite) TestSaveLeavesNoTempFiles() {
	doc := NewDocument()
	doc.Upsert(s.offlineRecord("Ash", "id-ash"), true)
	s.Require().NoError(s.store.Save(doc))

	entries, err := os.ReadDir(s.dataDir)
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal(AccountsFileName, entries[0].Name())
}
