package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
)

var (
	errUsage    = errors.New("usage")
	errNotFound = errors.New("poem not found")
	errAborted  = errors.New("aborted")
)

func (a *App) lookup(args []string, usage string) (models.Poem, error) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return models.Poem{}, errUsage
	}
	p, ok := a.repo.Poem(args[0])
	if !ok {
		fmt.Fprintf(a.out, "Poem %s not found\n", args[0])
		return models.Poem{}, errNotFound
	}
	return p, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	p, err := a.lookup(args, "show <id>")
	if err != nil {
		return err
	}
	writeDetail(a.out, p)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var in models.PoemInput
	var err error

	if in.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Author, err = GetSimpleText(a.reader, "Author", a.out); err != nil {
		return err
	}
	prompt := "Category (" + strings.Join(models.SuggestedCategories, ", ") + ")"
	if in.Category, err = GetSimpleText(a.reader, prompt, a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Poem (<b>bold</b>, <i>italic</i> and <br> are supported)", a.out); err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated)", a.out)
	if err != nil {
		return err
	}
	in.Tags = models.ParseTags(tags)

	p, err := a.repo.Create(ctx, in)
	if err != nil {
		a.reportError(ctx, "add poem", err)
		return err
	}
	fmt.Fprintf(a.out, "Added %q [%s]\n", p.Title, p.ID)
	return nil
}

// Edit prompts for each field showing the current value. An empty answer
// keeps the field; "-" clears the tags.
func (a *App) Edit(ctx context.Context, args []string) error {
	cur, err := a.lookup(args, "edit <id>")
	if err != nil {
		return err
	}

	var patch models.PoemPatch
	ask := func(label, current string) (*string, error) {
		v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
		if err != nil || v == "" {
			return nil, err
		}
		return &v, nil
	}

	if patch.Title, err = ask("Title", cur.Title); err != nil {
		return err
	}
	if patch.Author, err = ask("Author", cur.Author); err != nil {
		return err
	}
	if patch.Category, err = ask("Category", cur.Category); err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Poem (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		patch.Description = &desc
	}
	tags, err := ask("Tags", strings.Join(cur.Tags, ", "))
	if err != nil {
		return err
	}
	if tags != nil {
		parsed := models.ParseTags(*tags)
		if strings.TrimSpace(*tags) == "-" {
			parsed = []string{}
		}
		patch.Tags = &parsed
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}

	p, err := a.repo.Update(ctx, cur.ID, patch)
	if err != nil {
		a.reportError(ctx, "update poem", err)
		return err
	}
	fmt.Fprintf(a.out, "Updated %q\n", p.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	p, err := a.lookup(args, "delete <id>")
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Are you sure you want to delete %q?", p.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Kept.")
		return errAborted
	}

	if err := a.repo.Delete(ctx, p.ID); err != nil {
		a.reportError(ctx, "delete poem", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q\n", p.Title)
	return nil
}

// reportError prints validation failures per field and logs anything else.
func (a *App) reportError(ctx context.Context, op string, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f, verr.Fields[f])
		}
		return
	}

	a.logger.Error(ctx, op+" failed", "error", err)
	fmt.Fprintf(a.out, "Could not %s.\n", op)
}
