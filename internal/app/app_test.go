package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/snapgreet/internal/config"
)

func TestStartReturnsBindFailure(t *testing.T) {
	// Occupy a port so the server cannot bind it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserving a port: %v", err)
	}
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	a := App{
		config: &config.Config{Port: port, Env: "production"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = a.Start(ctx)
	if err == nil {
		t.Fatal("Start returned nil although the port was already bound")
	}
	if !strings.Contains(err.Error(), "listen and serve") {
		t.Errorf("error should come from the listener, got: %v", err)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := App{
		config: &config.Config{Port: "0", Env: "production"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned an error on clean shutdown: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
