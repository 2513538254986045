package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shelfsync/internal/config"
	"shelfsync/internal/history"
	"shelfsync/internal/services"
)

// Runner executes one sync pass. Satisfied by the sync orchestrator.
type Runner interface {
	Run(ctx context.Context, modeOverride config.SyncMode) (history.Run, error)
}

// Watcher runs syncs on an interval while holding an exclusive lock.
type Watcher struct {
	cfg      *config.Config
	runner   Runner
	logger   *slog.Logger
	interval time.Duration
	lockPath string
	lock     *flock.Flock
}

// LockPath returns the machine-wide sync lock location. The lock file lives
// next to the history database so every shelfsync process agrees on it.
func LockPath(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.HistoryPath()), "shelfsync.lock")
}

// Acquire takes the sync lock without blocking so a one-shot sync cannot
// interleave with a running watcher. The release function is safe to call
// exactly once.
func Acquire(cfg *config.Config) (func(), error) {
	path := LockPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another shelfsync instance holds the sync lock")
	}
	return func() { _ = lock.Unlock() }, nil
}

// New constructs a Watcher. The lock file lives next to the history database.
func New(cfg *config.Config, runner Runner, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || runner == nil || logger == nil {
		return nil, errors.New("watcher requires config, runner, and logger")
	}
	interval := time.Duration(cfg.Sync.WatchIntervalMin) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	lockPath := LockPath(cfg)
	return &Watcher{
		cfg:      cfg,
		runner:   runner,
		logger:   logger,
		interval: interval,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Run acquires the lock, syncs immediately, then keeps syncing every
// interval until ctx is cancelled. Transient sync failures are logged and
// the schedule keeps going; authentication failures stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(w.lockPath), 0o755); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another shelfsync watcher is already running")
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn("failed to release watch lock", "error", err)
		}
	}()

	w.logger.Info("watch started", "interval", w.interval, "lock", w.lockPath)
	if err := w.runOnce(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopping")
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) error {
	_, err := w.runner.Run(ctx, "")
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case services.IsFatal(err):
		return fmt.Errorf("sync: %w", err)
	default:
		w.logger.Warn("sync failed, will retry on next tick", "error", err)
		return nil
	}
}
