package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/repository"
)

func (a *App) List(ctx context.Context) error {
	s := a.repo.State()
	if s.Loading {
		fmt.Fprintln(a.out, "Loading poems...")
		return nil
	}

	poems := a.repo.FilteredAndSorted()
	if len(poems) == 0 {
		if len(s.Poems) == 0 {
			fmt.Fprintln(a.out, "No poems yet. Type 'add' to write the first one.")
		} else {
			fmt.Fprintln(a.out, "No poems match the current filters. Type 'reset' to clear them.")
		}
		return nil
	}

	for _, p := range poems {
		writeCard(a.out, p)
	}
	fmt.Fprintf(a.out, "%d of %d poems\n", len(poems), len(s.Poems))
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	a.repo.SetFilters(ctx, repository.FilterPatch{Search: &term})
	return a.List(ctx)
}

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: category <name|all>")
		return errUsage
	}
	name := strings.Join(args, " ")
	if strings.EqualFold(name, repository.AllCategories) {
		name = repository.AllCategories
	}
	a.repo.SetFilters(ctx, repository.FilterPatch{Category: &name})
	return a.List(ctx)
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: sort <title|author|date> [asc|desc]")
		return errUsage
	}

	by := repository.SortField(strings.ToLower(args[0]))
	switch by {
	case repository.SortByTitle, repository.SortByAuthor, repository.SortByDate:
	default:
		fmt.Fprintf(a.out, "Unknown sort field %q\n", args[0])
		return errUsage
	}
	patch := repository.FilterPatch{SortBy: &by}

	if len(args) == 2 {
		order := repository.SortOrder(strings.ToLower(args[1]))
		if order != repository.Asc && order != repository.Desc {
			fmt.Fprintf(a.out, "Unknown sort order %q\n", args[1])
			return errUsage
		}
		patch.SortOrder = &order
	}

	a.repo.SetFilters(ctx, patch)
	return a.List(ctx)
}

func (a *App) Categories(ctx context.Context) error {
	cats := a.repo.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories yet.")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	a.repo.ResetFilters(ctx)
	fmt.Fprintln(a.out, "Filters cleared.")
	return nil
}
