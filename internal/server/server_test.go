package server_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/server"
	"github.com/JaimeStill/user-auth/pkg/lifecycle"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: freePort(t)}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lc := lifecycle.New()
	if err := server.New(cfg, handler, logger).Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	resp, err := http.Get("http://" + cfg.Addr())
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get("http://" + cfg.Addr()); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestServer_Start_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := server.New(cfg, http.NotFoundHandler(), logger).Start(lifecycle.New()); err == nil {
		t.Error("Start() should fail when the address is in use")
	}
}
