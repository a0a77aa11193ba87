// Package models holds the poem record and the rules that keep it well formed.
package models

import (
	"slices"
	"strings"
	"time"
)

// Poem is a stored record. ID and CreatedAt never change after creation.
type Poem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of p.
func (p Poem) Clone() Poem {
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// Input returns the user-editable part of p.
func (p Poem) Input() PoemInput {
	return PoemInput{
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		Category:    p.Category,
		Tags:        slices.Clone(p.Tags),
	}
}

// WithInput returns p with its editable fields replaced by in.
func (p Poem) WithInput(in PoemInput) Poem {
	p.Title = in.Title
	p.Author = in.Author
	p.Description = in.Description
	p.Category = in.Category
	p.Tags = slices.Clone(in.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// PoemInput is what a user supplies when creating a poem.
type PoemInput struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
}

// Normalize trims every text field and normalises tags. Description keeps
// its inner line breaks.
func (in PoemInput) Normalize() PoemInput {
	return PoemInput{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Tags:        NormalizeTags(in.Tags),
	}
}

// PoemPatch carries a partial update; nil fields are left unchanged.
type PoemPatch struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (pp PoemPatch) IsEmpty() bool {
	return pp.Title == nil && pp.Author == nil && pp.Description == nil && pp.Category == nil && pp.Tags == nil
}

// ApplyTo merges the patch into in.
func (pp PoemPatch) ApplyTo(in PoemInput) PoemInput {
	out := in
	out.Tags = slices.Clone(in.Tags)
	if pp.Title != nil {
		out.Title = *pp.Title
	}
	if pp.Author != nil {
		out.Author = *pp.Author
	}
	if pp.Description != nil {
		out.Description = *pp.Description
	}
	if pp.Category != nil {
		out.Category = *pp.Category
	}
	if pp.Tags != nil {
		out.Tags = slices.Clone(*pp.Tags)
	}
	return out
}

// SortByCreatedDesc orders poems newest first. Ties keep their order.
func SortByCreatedDesc(poems []Poem) {
	slices.SortStableFunc(poems, func(a, b Poem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
