// Package account derives stable account identities and persists them
// into the external launcher's profile store.
package account

import (
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meowcraft/launcher/internal/dependencies/clock"
	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/profile"
)

// offlinePrefix is the string the game hashes to derive offline
// player UUIDs. Part of the game's own convention, not ours.
const offlinePrefix = "OfflinePlayer:"

// Notifier reports a successful login to an external collaborator.
// Implementations must be best-effort: they never return an error.
type Notifier interface {
	Notify(ctx context.Context, displayName string, id model.IdentityID)
}

// Materializer writes account records into the profile store
type Materializer struct {
	store    *profile.Store
	clock    clock.Clock
	notifier Notifier // nil disables notification
	logger   *slog.Logger
}

// NewMaterializer creates a Materializer
func NewMaterializer(store *profile.Store, clk clock.Clock, notifier Notifier, logger *slog.Logger) *Materializer {
	return &Materializer{
		store:    store,
		clock:    clk,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "account")),
	}
}

// OfflineID derives the deterministic identity for a display name:
// the MD5 digest of "OfflinePlayer:"+name with the UUID version nibble
// forced to 3 (name-derived) and the variant bits forced to the RFC
// 4122 pattern. The same name always yields the same id.
func OfflineID(displayName string) model.IdentityID {
	sum := md5.Sum([]byte(offlinePrefix + displayName))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80

	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// Cannot happen with a 16-byte input
		panic(fmt.Sprintf("account: offline id derivation: %v", err))
	}
	return model.IdentityID(id.String())
}

// MaterializeOffline derives and persists an anonymous account for the
// given display name and marks it active. The display name must have
// been validated at the input boundary.
func (m *Materializer) MaterializeOffline(ctx context.Context, displayName string) (model.AccountRecord, error) {
	record := model.AccountRecord{
		Kind:        model.AccountAnonymous,
		IdentityID:  OfflineID(displayName),
		DisplayName: displayName,
		IssuedAt:    m.clock.Now(),
	}
	if err := m.commit(ctx, record); err != nil {
		return model.AccountRecord{}, err
	}
	return record, nil
}

// MaterializeFederated persists a provider-issued identity and marks
// it active. The supplied identity is trusted verbatim.
func (m *Materializer) MaterializeFederated(ctx context.Context, ident identity.Identity) (model.AccountRecord, error) {
	record := model.AccountRecord{
		Kind:        model.AccountFederated,
		IdentityID:  ident.ID,
		DisplayName: ident.DisplayName,
		Credential:  ident.AccessToken,
		IssuedAt:    m.clock.Now(),
	}
	if err := m.commit(ctx, record); err != nil {
		return model.AccountRecord{}, err
	}
	return record, nil
}

func (m *Materializer) commit(ctx context.Context, record model.AccountRecord) error {
	doc, err := m.store.Load()
	if err != nil {
		return err
	}

	doc.Upsert(record, true)

	if err := m.store.Save(doc); err != nil {
		return err
	}

	m.logger.Info("account materialized",
		slog.String("kind", string(record.Kind)),
		slog.String("identity_id", string(record.IdentityID)),
		slog.String("display_name", record.DisplayName))

	// Best-effort; the notifier logs its own failures and never
	// propagates them.
	if m.notifier != nil {
		m.notifier.Notify(ctx, record.DisplayName, record.IdentityID)
	}
	return nil
}
