package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSamplePoems(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	poems := LocalSamplePoems(now)

	require.Len(t, poems, 2)
	assert.Equal(t, "1", poems[0].ID)
	assert.Equal(t, "2", poems[1].ID)
	for _, p := range poems {
		assert.Equal(t, now, p.CreatedAt)
		assert.Equal(t, now, p.UpdatedAt)
	}
	assert.Equal(t, []string{"love", "beauty", "eternity"}, poems[1].Tags)
}
