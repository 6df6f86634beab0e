package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/dealer-api/internal/config"
)

func TestConnectDisabled(t *testing.T) {
	rdb, err := Connect(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	c := NewRedisCache(nil, "catalog:")
	assert.Equal(t, "catalog:makes", c.key("makes"))
}
