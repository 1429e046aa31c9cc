package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonelab-collective/booking/internal/config"
)

func TestNew_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{Redis: config.RedisCfg{Addr: mr.Addr(), PoolSize: 2}}

	rdb, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer Close(rdb)

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestNew_Unreachable(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisCfg{Addr: "127.0.0.1:1"}}
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOptions_TLS(t *testing.T) {
	assert.Nil(t, Options(config.RedisCfg{}).TLSConfig)
	assert.NotNil(t, Options(config.RedisCfg{EnableTLS: true}).TLSConfig)
}
