package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/carverauto/heartbeat/pkg/api"
	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeService struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Int64
}

func (s *fakeService) Start(ctx context.Context) error {
	s.started.Store(true)

	if s.startErr != nil {
		return s.startErr
	}

	<-ctx.Done()

	return nil
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Add(1)
	return nil
}

func (*fakeService) Status() models.AgentStatus { return models.AgentStatus{Metric: "cpu"} }

func runAsync(ctx context.Context, opts *ServerOptions) <-chan error {
	done := make(chan error, 1)

	go func() { done <- RunServer(ctx, opts) }()

	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("RunServer did not return")
		return nil
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	var out bytes.Buffer

	s := NewShutdown(logger.New(&out, logger.LevelInfo))

	assert.True(t, s.Trigger("SIGTERM"))
	assert.False(t, s.Trigger("SIGINT"))
	assert.False(t, s.Trigger("SIGHUP"))

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}

	assert.Equal(t, 1, strings.Count(out.String(), "Interrupted by"))
	assert.Contains(t, out.String(), "Interrupted by SIGTERM, shutting down")
}

func TestSignalName(t *testing.T) {
	assert.Equal(t, "SIGINT", signalName(syscall.SIGINT))
	assert.Equal(t, "SIGTERM", signalName(syscall.SIGTERM))
	assert.Equal(t, "SIGHUP", signalName(syscall.SIGHUP))
}

func TestRunServer_ShutdownTrigger(t *testing.T) {
	svc := &fakeService{}
	shutdown := NewShutdown(nil)

	done := runAsync(context.Background(), &ServerOptions{
		ServiceName:      "heartbeat-cpu",
		Service:          svc,
		GRPCListenAddr:   "127.0.0.1:0",
		StatusServer:     api.NewAPIServer("heartbeat-cpu", svc),
		StatusListenAddr: "127.0.0.1:0",
		Shutdown:         shutdown,
	})

	require.Eventually(t, svc.started.Load, time.Second, time.Millisecond)

	shutdown.Trigger("SIGTERM")
	shutdown.Trigger("SIGTERM")

	require.NoError(t, wait(t, done))
	assert.Equal(t, int64(1), svc.stopped.Load())
}

func TestRunServer_ContextCanceled(t *testing.T) {
	svc := &fakeService{}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, &ServerOptions{ServiceName: "heartbeat-ram", Service: svc})

	require.Eventually(t, svc.started.Load, time.Second, time.Millisecond)
	cancel()

	require.ErrorIs(t, wait(t, done), context.Canceled)
	assert.Equal(t, int64(1), svc.stopped.Load())
}

func TestRunServer_ServiceError(t *testing.T) {
	svc := &fakeService{startErr: errBoom}

	err := wait(t, runAsync(context.Background(), &ServerOptions{ServiceName: "heartbeat-disk", Service: svc}))

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, int64(1), svc.stopped.Load())
}

func TestRunServer_StatusServerListenError(t *testing.T) {
	svc := &fakeService{}

	err := wait(t, runAsync(context.Background(), &ServerOptions{
		ServiceName:      "heartbeat-cpu",
		Service:          svc,
		StatusServer:     api.NewAPIServer("heartbeat-cpu", svc),
		StatusListenAddr: "bad-address",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status server")
}
