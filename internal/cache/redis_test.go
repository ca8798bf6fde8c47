package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbantide.com/store/internal/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOpenDisabledWithoutAddr(t *testing.T) {
	c, err := Open(context.Background(), config.RedisConfig{}, discard)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, c)
	Close(nil, discard)
}

func TestOpenFailsFastWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := Open(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, discard)
	require.Error(t, err)
	assert.Nil(t, c)
}
