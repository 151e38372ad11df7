package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/config"
)

func TestAddrJoinsHostAndPort(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache.internal", Port: "6380"}
	assert.Equal(t, "cache.internal:6380", addr(cfg))
}

func TestNewRedisClientFailsFastWhenUnreachable(t *testing.T) {
	cfg := config.RedisConfig{Host: "127.0.0.1", Port: "1"}

	client, err := NewRedisClient(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
