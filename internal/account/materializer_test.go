package account

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/meowcraft/launcher/internal/dependencies/mocks"
	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/profile"
	"github.com/meowcraft/launcher/internal/testutil"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []model.IdentityID
}

func (n *recordingNotifier) Notify(ctx context.Context, displayName string, id model.IdentityID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, id)
}

type MaterializerSuite struct {
	suite.Suite
	store        *profile.Store
	clock        *mocks.MockClock
	notifier     *recordingNotifier
	materializer *Materializer
	ctx          context.Context
}

func TestMaterializerSuite(t *testing.T) {
	suite.Run(t, new(MaterializerSuite))
}

func (s *MaterializerSuite) SetupTest() {
	s.store = profile.NewStore(s.T().TempDir(), testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.notifier = &recordingNotifier{}
	s.materializer = NewMaterializer(s.store, s.clock, s.notifier, testutil.NopLogger())
	s.ctx = context.Background()
}

// OfflineID tests

func (s *MaterializerSuite) TestOfflineIDIsDeterministic() {
	// Known digest of "OfflinePlayer:Ash" with version/variant bits set
	s.Equal(model.IdentityID("4491e473-c7c9-3195-a8de-330c79a24db4"), OfflineID("Ash"))
	s.Equal(OfflineID("Ash"), OfflineID("Ash"))
}

func (s *MaterializerSuite) TestOfflineIDDiffersPerName() {
	s.Equal(model.IdentityID("235eebab-9825-3a80-aa94-a1d0fdfa7a2c"), OfflineID("Red"))
	s.NotEqual(OfflineID("Ash"), OfflineID("Red"))
}

func (s *MaterializerSuite) TestOfflineIDHasNameDerivedVersionAndVariant() {
	id := string(OfflineID("Misty"))
	s.Len(id, 36)
	s.Equal(byte('3'), id[14]) // version nibble
	s.Contains("89ab", string(id[19])) // RFC 4122 variant
}

// MaterializeOffline tests

func (s *MaterializerSuite) TestMaterializeOfflinePersistsRecord() {
	record, err := s.materializer.MaterializeOffline(s.ctx, "Ash")
	s.Require().NoError(err)

	s.Equal(model.AccountAnonymous, record.Kind)
	s.Equal(s.clock.Now(), record.IssuedAt)

	doc, err := s.store.Load()
	s.Require().NoError(err)
	s.Len(doc.Accounts, 1)
	s.Equal(string(record.IdentityID), doc.ActiveAccount)
	s.Equal(string(record.IdentityID), doc.LastUsedAccount)
}

func (s *MaterializerSuite) TestMaterializeOfflineIsIdempotent() {
	first, err := s.materializer.MaterializeOffline(s.ctx, "Ash")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	second, err := s.materializer.MaterializeOffline(s.ctx, "Ash")
	s.Require().NoError(err)

	s.Equal(first.IdentityID, second.IdentityID)

	doc, err := s.store.Load()
	s.Require().NoError(err)
	s.Len(doc.Accounts, 1)
}

func (s *MaterializerSuite) TestMaterializeOfflineNotifies() {
	record, err := s.materializer.MaterializeOffline(s.ctx, "Ash")
	s.Require().NoError(err)

	s.Equal([]model.IdentityID{record.IdentityID}, s.notifier.calls)
}

// MaterializeFederated tests

func (s *MaterializerSuite) TestMaterializeFederatedTrustsIdentity() {
	ident := identity.Identity{
		ID:          "provider-id",
		DisplayName: "AshKetchum",
		AccessToken: "bearer-token",
	}

	record, err := s.materializer.MaterializeFederated(s.ctx, ident)
	s.Require().NoError(err)

	s.Equal(model.AccountFederated, record.Kind)
	s.Equal(model.IdentityID("provider-id"), record.IdentityID)
	s.Equal("bearer-token", record.Credential)

	doc, err := s.store.Load()
	s.Require().NoError(err)
	s.Equal("provider-id", doc.ActiveAccount)
	s.Equal("bearer-token", doc.Accounts[0].Ygg.Token)
}

func (s *MaterializerSuite) TestFederatedLoginDeactivatesOfflineAccount() {
	offline, err := s.materializer.MaterializeOffline(s.ctx, "Ash")
	s.Require().NoError(err)

	_, err = s.materializer.MaterializeFederated(s.ctx, identity.Identity{
		ID:          "provider-id",
		DisplayName: "AshKetchum",
		AccessToken: "tok",
	})
	s.Require().NoError(err)

	doc, err := s.store.Load()
	s.Require().NoError(err)
	s.Len(doc.Accounts, 2)
	s.Equal("provider-id", doc.ActiveAccount)
	s.NotEqual(string(offline.IdentityID), doc.ActiveAccount)
}

func (s *MaterializerSuite) TestNilNotifierIsAllowed() {
	m := NewMaterializer(s.store, s.clock, nil, testutil.NopLogger())

	_, err := m.MaterializeOffline(s.ctx, "Ash")
	s.NoError(err)
}
