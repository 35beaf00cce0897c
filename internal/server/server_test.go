package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/handler"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
)

func newHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	h, err := handler.NewHandlers(&service.Services{}, config.StructuredConfig{Server: cfg}, logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewServer_NoTransports(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	srv, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.RunServer(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServer_ReturnsWhenListenFails(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := config.Server{GRPCAddress: taken.Addr().String()}
	srv, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	err = s.run(context.Background())
	assert.ErrorContains(t, err, "listen")
}
