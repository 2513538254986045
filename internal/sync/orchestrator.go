package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shelfsync/internal/catalog"
	"shelfsync/internal/config"
	"shelfsync/internal/history"
	"shelfsync/internal/notifications"
	"shelfsync/internal/progress"
	"shelfsync/internal/reconcile"
	"shelfsync/internal/services"
)

// Source is the Audiobookshelf surface the orchestrator consumes.
type Source interface {
	Authenticate(ctx context.Context) error
	Libraries(ctx context.Context) ([]catalog.Library, error)
	LibraryItems(ctx context.Context, libraryID, sortBy string, sortDesc bool) ([]catalog.Item, error)
	ListeningSessions(ctx context.Context) ([]catalog.Session, error)
	MediaProgress(ctx context.Context) ([]catalog.ProgressRecord, error)
	ProbeCover(ctx context.Context, itemID string) bool
}

// Recorder persists run summaries. A nil Recorder disables history.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Orchestrator drives one synchronization run end to end.
type Orchestrator struct {
	cfg        *config.Config
	source     Source
	reconciler *reconcile.Reconciler
	notifier   notifications.Service
	recorder   Recorder
	logger     *slog.Logger
}

// New creates an Orchestrator. recorder may be nil.
func New(cfg *config.Config, source Source, reconciler *reconcile.Reconciler, notifier notifications.Service, recorder Recorder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		source:     source,
		reconciler: reconciler,
		notifier:   notifier,
		recorder:   recorder,
		logger:     logger,
	}
}

// Run executes a full sync. modeOverride, when non-empty, wins over the
// configured sync mode for this run only. The returned summary is populated
// even when the run fails partway.
func (o *Orchestrator) Run(ctx context.Context, modeOverride config.SyncMode) (history.Run, error) {
	mode := o.cfg.Mode()
	if modeOverride != "" {
		mode = modeOverride
	}

	run := history.Run{
		ID:        uuid.New().String(),
		Mode:      string(mode),
		StartedAt: time.Now().UTC(),
	}
	logger := o.logger.With("run_id", run.ID, "mode", run.Mode)
	logger.Info("sync starting")

	err := o.execute(ctx, mode, logger, &run)
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Error = err.Error()
		_ = o.notifier.NotifyError(ctx, err, "sync")
	} else {
		_ = o.notifier.NotifySyncCompleted(ctx, run.Created, run.Updated, run.Skipped, run.Failed, run.Duration())
	}
	o.record(ctx, logger, run)

	logger.Info("sync finished",
		"libraries", run.Libraries,
		"items", run.Items,
		"created", run.Created,
		"updated", run.Updated,
		"skipped", run.Skipped,
		"failed", run.Failed,
		"duration", run.Duration().Round(time.Millisecond))
	return run, err
}

func (o *Orchestrator) execute(ctx context.Context, mode config.SyncMode, logger *slog.Logger, run *history.Run) error {
	if err := o.source.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	libraries, err := o.source.Libraries(ctx)
	if err != nil {
		return fmt.Errorf("list libraries: %w", err)
	}
	run.Libraries = len(libraries)
	_ = o.notifier.NotifySyncStarted(ctx, string(mode), len(libraries))

	byItem := o.aggregateProgress(ctx, logger)

	for _, library := range libraries {
		if err := ctx.Err(); err != nil {
			return err
		}
		items, err := o.source.LibraryItems(ctx, library.ID, o.cfg.Sync.SortBy, o.cfg.Sync.SortDesc)
		if err != nil {
			logger.Warn("library listing failed, skipping", "library", library.Name, "error", err)
			continue
		}
		logger.Info("syncing library", "library", library.Name, "items", len(items))

		for i := range items {
			item := &items[i]
			item.LibraryName = library.Name
			if fresh, ok := byItem[item.ID]; ok {
				item.Progress = catalog.MergeProgress(item.Progress, fresh)
			}
			if o.cfg.Covers.Download {
				item.CoverProbed = o.source.ProbeCover(ctx, item.ID)
			}

			run.Items++
			outcome, applyErr := o.reconciler.Apply(item, mode)
			switch outcome {
			case reconcile.OutcomeCreated:
				run.Created++
			case reconcile.OutcomeUpdated:
				run.Updated++
			case reconcile.OutcomeSkipped:
				run.Skipped++
			case reconcile.OutcomeFailed:
				run.Failed++
				logger.Warn("item failed", "item", item.Title(), "error", applyErr)
			}
			if applyErr != nil && services.IsFatal(applyErr) {
				return applyErr
			}
		}
	}
	return nil
}

// aggregateProgress folds the two listening-progress sources into one map.
// Either source failing is survivable: the sync still runs with whatever
// progress data it could fetch.
func (o *Orchestrator) aggregateProgress(ctx context.Context, logger *slog.Logger) map[string]*catalog.ProgressRecord {
	sessions, err := o.source.ListeningSessions(ctx)
	if err != nil {
		logger.Warn("listening sessions unavailable", "error", err)
	}
	direct, err := o.source.MediaProgress(ctx)
	if err != nil {
		logger.Warn("media progress unavailable", "error", err)
	}
	return progress.Aggregate(sessions, direct)
}

func (o *Orchestrator) record(ctx context.Context, logger *slog.Logger, run history.Run) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Record(ctx, run); err != nil {
		logger.Warn("run history not recorded", "error", err)
	}
}
