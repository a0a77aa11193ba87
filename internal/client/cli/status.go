package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/repository"
)

// Reload reloads the collection. The outcome is printed by the watchLoads
// subscription.
func (a *App) Reload(ctx context.Context) error {
	fmt.Fprintln(a.out, "Reloading...")
	if err := a.repo.Reload(ctx); err != nil {
		a.logger.Error(ctx, "reload failed", "error", err)
		return err
	}
	return nil
}

// watchLoads returns a state subscriber that reports each finished load.
func (a *App) watchLoads() func(repository.State) {
	var mu sync.Mutex
	loading := a.repo.State().Loading

	return func(s repository.State) {
		mu.Lock()
		finished := loading && !s.Loading
		loading = s.Loading
		mu.Unlock()

		if !finished {
			return
		}
		if s.LastError != nil {
			fmt.Fprintln(a.out, "Could not load poems. Type 'reload' to try again.")
			return
		}
		fmt.Fprintf(a.out, "Loaded %d poems.\n", len(s.Poems))
	}
}

func (a *App) Status(ctx context.Context) error {
	s := a.repo.State()
	f := s.Filters

	fmt.Fprintf(a.out, "Mode:      %s\n", a.Mode())
	fmt.Fprintf(a.out, "Poems:     %d\n", len(s.Poems))
	fmt.Fprintf(a.out, "Search:    %q\n", f.Search)
	fmt.Fprintf(a.out, "Category:  %s\n", f.Category)
	fmt.Fprintf(a.out, "Sort:      %s %s\n", f.SortBy, f.SortOrder)
	if s.LastError != nil {
		fmt.Fprintf(a.out, "Error:     %v (type 'reload' to retry)\n", s.LastError)
	}
	return nil
}
