package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/repository"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// PoemRepository is the repository surface the CLI drives.
type PoemRepository interface {
	Init(ctx context.Context) error
	Reload(ctx context.Context) error
	State() repository.State
	Poem(id string) (models.Poem, bool)
	Create(ctx context.Context, in models.PoemInput) (models.Poem, error)
	Update(ctx context.Context, id string, patch models.PoemPatch) (models.Poem, error)
	Delete(ctx context.Context, id string) error
	FilteredAndSorted() []models.Poem
	Categories() []string
	SetFilters(ctx context.Context, patch repository.FilterPatch) repository.FilterState
	ResetFilters(ctx context.Context) repository.FilterState
	CheckConnectivity(ctx context.Context) bool
	Subscribe(fn func(repository.State)) func()
}

type App struct {
	repo   PoemRepository
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	onlineCheckInterval time.Duration
	probeTimeout        time.Duration

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp builds an App reading from stdin and writing to stdout. A zero
// interval disables the connectivity watcher and marks the app disabled.
func NewApp(repo PoemRepository, logger logging.Logger, onlineCheckInterval time.Duration) *App {
	a := &App{
		repo:                repo,
		logger:              logger,
		reader:              bufio.NewReader(os.Stdin),
		out:                 os.Stdout,
		onlineCheckInterval: onlineCheckInterval,
		probeTimeout:        3 * time.Second,
		mode:                ModeOffline,
	}
	if onlineCheckInterval <= 0 {
		a.mode = ModeDisabled
	}
	return a
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// Run loads the collection and blocks in the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("Poetry collection (type 'help' for commands)")

	defer a.repo.Subscribe(a.watchLoads())()

	if err := a.repo.Init(ctx); err != nil {
		a.logger.Error(ctx, "initial load failed", "error", err)
	}

	if a.Mode() != ModeDisabled {
		a.probe(ctx)

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.StartOnlineStatusWatcher(watchCtx, a.onlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	return "(" + string(a.Mode()) + ")"
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, a.probeTimeout)
	defer cancel()

	if a.repo.CheckConnectivity(pctx) {
		a.setMode(ctx, ModeOnline)
	} else {
		a.setMode(ctx, ModeOffline)
	}
}

// StartOnlineStatusWatcher probes the remote store every interval until ctx
// is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
