// Package provision coordinates the end-to-end pipeline that takes a
// machine from any starting condition to a launchable instance with an
// active account: check content, fetch, extract, materialize.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/meowcraft/launcher/internal/account"
	"github.com/meowcraft/launcher/internal/dependencies/random"
	"github.com/meowcraft/launcher/internal/fetch"
	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/install"
	"github.com/meowcraft/launcher/internal/model"
)

// State is the orchestrator's externally visible phase
type State string

const (
	StateIdle          State = "idle"
	StateChecking      State = "checking_content"
	StateFetching      State = "fetching"
	StateExtracting    State = "extracting"
	StateMaterializing State = "materializing_account"
	StateReady         State = "ready_to_launch"
	StateFailed        State = "failed"
)

var (
	// ErrInstallIncomplete indicates the instance content could not be
	// brought to a usable condition. The cause is wrapped.
	ErrInstallIncomplete = errors.New("instance install incomplete")
	// ErrAlreadyInProgress is returned when a provisioning run is
	// requested while another is still running. Requests are rejected
	// rather than queued.
	ErrAlreadyInProgress = errors.New("provisioning already in progress")
	// ErrAccountMaterialize indicates the account could not be written
	// to the profile store.
	ErrAccountMaterialize = errors.New("account materialization failed")
)

const archiveNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// AccountInput selects which account to materialize during a run.
// When Federated is nil an anonymous account is derived from
// DisplayName; otherwise the provider identity is used as-is.
type AccountInput struct {
	DisplayName string
	Federated   *identity.Identity
}

// Config holds the orchestrator's fixed parameters
type Config struct {
	InstanceName string
	DownloadURL  string
	DataDir      string
	TempDir      string
}

// Status is a point-in-time snapshot served to status consumers
type Status struct {
	State     State  `json:"state"`
	Instance  string `json:"instance"`
	Installed bool   `json:"installed"`
}

// Orchestrator runs the provisioning pipeline. At most one run may be
// in flight at a time.
type Orchestrator struct {
	cfg          Config
	fetcher      *fetch.Fetcher
	installer    *install.Installer
	materializer *account.Materializer
	random       random.Random
	logger       *slog.Logger

	mu        sync.Mutex
	inFlight  bool
	state     State
	observers []model.ProgressObserver
}

func NewOrchestrator(
	cfg Config,
	fetcher *fetch.Fetcher,
	installer *install.Installer,
	materializer *account.Materializer,
	rand random.Random,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:          cfg,
		fetcher:      fetcher,
		installer:    installer,
		materializer: materializer,
		random:       rand,
		logger:       logger.With(slog.String("component", "provision")),
		state:        StateIdle,
	}
}

// AddObserver registers an observer for progress events. Observers
// must not block.
func (o *Orchestrator) AddObserver(obs model.ProgressObserver) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, obs)
}

// Status reports the current phase and whether the instance directory
// exists on disk.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()

	return Status{
		State:     state,
		Instance:  o.cfg.InstanceName,
		Installed: o.installed(),
	}
}

// EnsureReady runs the full pipeline: make sure the instance content
// is on disk, then materialize the requested account. It returns the
// directive the launcher needs to start the instance. A second call
// while a run is in flight fails with ErrAlreadyInProgress.
func (o *Orchestrator) EnsureReady(ctx context.Context, input AccountInput) (model.LaunchDirective, error) {
	if err := o.begin(); err != nil {
		return model.LaunchDirective{}, err
	}
	defer o.end()

	if err := o.ensureContent(ctx); err != nil {
		o.fail(err)
		return model.LaunchDirective{}, err
	}

	record, err := o.materialize(ctx, input)
	if err != nil {
		o.fail(err)
		return model.LaunchDirective{}, err
	}

	o.setState(StateReady)
	o.emit(model.ProgressEvent{
		Stage:   model.StageComplete,
		Percent: 100,
		Message: "ready to launch",
	})

	return model.LaunchDirective{
		InstanceName: o.cfg.InstanceName,
		IdentityID:   record.IdentityID,
		DisplayName:  record.DisplayName,
	}, nil
}

// EnsureContent brings the instance content to a usable condition
// without touching accounts. Used by the standalone install flow.
func (o *Orchestrator) EnsureContent(ctx context.Context) error {
	if err := o.begin(); err != nil {
		return err
	}
	defer o.end()

	if err := o.ensureContent(ctx); err != nil {
		o.fail(err)
		return err
	}

	o.setState(StateReady)
	o.emit(model.ProgressEvent{
		Stage:   model.StageComplete,
		Percent: 100,
		Message: "instance installed",
	})
	return nil
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return ErrAlreadyInProgress
	}
	o.inFlight = true
	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()
}

func (o *Orchestrator) ensureContent(ctx context.Context) error {
	o.setState(StateChecking)
	o.emit(model.ProgressEvent{
		Stage:   model.StageChecking,
		Percent: model.PercentUnknown,
		Message: "checking instance content",
	})

	if o.installed() {
		o.logger.Info("instance already installed",
			slog.String("instance", o.cfg.InstanceName))
		return nil
	}

	archivePath, err := o.fetchArchive(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInstallIncomplete, err)
	}
	// The temp archive is removed whether or not extraction succeeds
	defer func() {
		if err := os.Remove(archivePath); err != nil {
			o.logger.Warn("removing temp archive",
				slog.String("path", archivePath),
				slog.String("error", err.Error()))
		}
	}()

	o.setState(StateExtracting)
	o.emit(model.ProgressEvent{
		Stage:   model.StageExtracting,
		Percent: model.PercentUnknown,
		Message: "extracting instance content",
	})

	if err := o.installer.Extract(ctx, archivePath, o.instancesDir()); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallIncomplete, err)
	}

	if !o.installed() {
		return fmt.Errorf("%w: archive did not contain instance %q",
			ErrInstallIncomplete, o.cfg.InstanceName)
	}
	return nil
}

func (o *Orchestrator) fetchArchive(ctx context.Context) (string, error) {
	archivePath := filepath.Join(o.cfg.TempDir,
		"meowcraft-"+o.random.String(12, archiveNameAlphabet)+".zip")

	o.setState(StateFetching)
	o.emit(model.ProgressEvent{
		Stage:   model.StageDownloading,
		Percent: model.PercentUnknown,
		Message: "downloading instance content",
	})

	onProgress := func(percent int, received, total int64) {
		o.emit(model.ProgressEvent{
			Stage:   model.StageDownloading,
			Percent: percent,
			Message: "downloading instance content",
		})
	}

	if err := o.fetcher.Fetch(ctx, o.cfg.DownloadURL, archivePath, onProgress); err != nil {
		return "", err
	}
	return archivePath, nil
}

func (o *Orchestrator) materialize(ctx context.Context, input AccountInput) (model.AccountRecord, error) {
	o.setState(StateMaterializing)
	o.emit(model.ProgressEvent{
		Stage:   model.StageMaterializing,
		Percent: model.PercentUnknown,
		Message: "writing account",
	})

	var (
		record model.AccountRecord
		err    error
	)
	if input.Federated != nil {
		record, err = o.materializer.MaterializeFederated(ctx, *input.Federated)
	} else {
		record, err = o.materializer.MaterializeOffline(ctx, input.DisplayName)
	}
	if err != nil {
		return model.AccountRecord{}, fmt.Errorf("%w: %w", ErrAccountMaterialize, err)
	}
	return record, nil
}

func (o *Orchestrator) fail(err error) {
	o.setState(StateFailed)
	o.emit(model.ProgressEvent{
		Stage:   model.StageFailed,
		Percent: model.PercentUnknown,
		Message: err.Error(),
	})
	o.logger.Error("provisioning failed", slog.String("error", err.Error()))
}

func (o *Orchestrator) setState(state State) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func (o *Orchestrator) emit(event model.ProgressEvent) {
	o.mu.Lock()
	observers := make([]model.ProgressObserver, len(o.observers))
	copy(observers, o.observers)
	o.mu.Unlock()

	for _, obs := range observers {
		obs.OnProgress(event)
	}
}

func (o *Orchestrator) instancesDir() string {
	return filepath.Join(o.cfg.DataDir, "instances")
}

// InstanceDir is the on-disk location of the managed instance
func (o *Orchestrator) InstanceDir() string {
	return filepath.Join(o.instancesDir(), o.cfg.InstanceName)
}

func (o *Orchestrator) installed() bool {
	info, err := os.Stat(o.InstanceDir())
	return err == nil && info.IsDir()
}
