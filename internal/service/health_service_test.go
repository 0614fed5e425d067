package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthServiceConnected(t *testing.T) {
	svc := NewHealthService(pingerFunc(func(ctx context.Context) error { return nil }), nil, time.Second, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 123000000, time.FixedZone("IST", 19800)) }

	status := svc.Check(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "connected", status.Database)
	assert.Empty(t, status.Cache)
	assert.Equal(t, "2024-05-01T03:00:00.123Z", status.Timestamp)
}

func TestHealthServiceDisconnected(t *testing.T) {
	db := pingerFunc(func(ctx context.Context) error { return errors.New("refused") })
	cache := pingerFunc(func(ctx context.Context) error { return nil })
	status := NewHealthService(db, cache, 0, nil).Check(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "disconnected", status.Database)
	assert.Equal(t, "connected", status.Cache)
}

func TestHealthServiceProbeTimeout(t *testing.T) {
	slow := pingerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	status := NewHealthService(slow, nil, 20*time.Millisecond, nil).Check(context.Background())
	assert.Equal(t, "disconnected", status.Database)
}
