package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jansuraksha/jan-suraksha-api/api"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := api.NewMemoryCache()

	_, ok := c.Get(context.Background(), "contributors")
	assert.False(t, ok)

	c.Set(context.Background(), "contributors", `[{"login":"anjali"}]`, time.Minute)

	val, ok := c.Get(context.Background(), "contributors")
	assert.True(t, ok)
	assert.Equal(t, `[{"login":"anjali"}]`, val)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := api.NewMemoryCache()

	c.Set(context.Background(), "contributors", "stale", -time.Second)

	_, ok := c.Get(context.Background(), "contributors")
	assert.False(t, ok)
}
