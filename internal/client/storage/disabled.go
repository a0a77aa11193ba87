package storage

import (
	"context"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
)

// Disabled is the remote used when no remote driver is configured. Every
// call fails with ErrRemoteDisabled, so the repository always takes the
// local path.
type Disabled struct{}

func (Disabled) Create(context.Context, models.PoemInput) (models.Poem, error) {
	return models.Poem{}, ErrRemoteDisabled
}

func (Disabled) Update(context.Context, models.Poem) (models.Poem, error) {
	return models.Poem{}, ErrRemoteDisabled
}

func (Disabled) Remove(context.Context, string) error {
	return ErrRemoteDisabled
}

func (Disabled) ListAll(context.Context) ([]models.Poem, error) {
	return nil, ErrRemoteDisabled
}

func (Disabled) CheckConnectivity(context.Context) bool {
	return false
}
