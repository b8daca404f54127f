package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "news", Password: "secret", DBName: "newsdb", SSLMode: "disable"}

	assert.Equal(t,
		"host=db port=5432 user=news password=secret dbname=newsdb sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: server.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	server.CheckGet(t, "k", "v")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
	assert.Nil(t, client)
}
