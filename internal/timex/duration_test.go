package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_JSON(t *testing.T) {
	var cfg struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"3s","b":1500000000}`), &cfg))

	assert.Equal(t, 3*time.Second, cfg.A.Duration)
	assert.Equal(t, 1500*time.Millisecond, cfg.B.Duration)

	out, err := json.Marshal(cfg.A)
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(out))
}

func TestDuration_JSONInvalid(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_YAML(t *testing.T) {
	var cfg struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 2m\nb: 1000\n"), &cfg))

	assert.Equal(t, 2*time.Minute, cfg.A.Duration)
	assert.Equal(t, time.Microsecond, cfg.B.Duration)
}

func TestFromMillis(t *testing.T) {
	got := FromMillis(1_700_000_000_123)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, int64(1_700_000_000_123), got.UnixMilli())
}
