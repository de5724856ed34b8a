package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/hostnet/pkg/cache"
)

func TestCache(t *testing.T) {
	c := New()
	t.Cleanup(func() { c.Close() })

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	value := []byte("network_config")
	require.NoError(t, c.Set(ctx, "resolve:compute-0", value, time.Minute))
	require.NoError(t, c.Set(ctx, "resolve:controller-0", []byte("x"), 0))
	value[0] = 'N'

	got, err := c.Get(ctx, "resolve:compute-0")
	require.NoError(t, err)
	assert.Equal(t, "network_config", string(got))

	keys, err := c.Keys(ctx, "resolve:c*-0")
	require.NoError(t, err)
	assert.Equal(t, []string{"resolve:compute-0", "resolve:controller-0"}, keys)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "resolve:compute-0")
	assert.True(t, errors.Is(err, cache.ErrNotFound))

	keys, err = c.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"resolve:controller-0"}, keys)

	c.removeExpired()
	assert.Len(t, c.items, 1)

	require.NoError(t, c.Delete(ctx, "resolve:controller-0"))
	_, err = c.Get(ctx, "resolve:controller-0")
	assert.True(t, errors.Is(err, cache.ErrNotFound))

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"", "anything", true},
		{"*", "anything", true},
		{"resolve:*", "resolve:compute-0", true},
		{"resolve:*", "interfaces:compute-0", false},
		{"*:compute-0", "resolve:compute-0", true},
		{"resolve:compute-0", "resolve:compute-0", true},
		{"resolve:compute-0", "resolve:compute-00", false},
		{"resolve:compute-0*", "resolve:compute-0", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.key))
		})
	}
}
