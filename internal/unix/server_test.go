// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package unix

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeremyhahn/go-shameless/pkg/logging"
)

func testHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok "+r.URL.Path)
	})
}

func socketClient(path string) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
		Timeout: 5 * time.Second,
	}
}

// shortSocketPath keeps the path under the sun_path limit
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "sl")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "run", "s.sock")
}

func TestNewServer_Errors(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil config")
	}
	if _, err := NewServer(&Config{Handler: testHandler()}); err == nil {
		t.Error("Expected error for missing socket path")
	}
	if _, err := NewServer(&Config{SocketPath: "/tmp/x.sock"}); err == nil {
		t.Error("Expected error for missing handler")
	}
}

func TestNewServer_Defaults(t *testing.T) {
	server, err := NewServer(&Config{SocketPath: "/tmp/x.sock", Handler: testHandler()})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if server.config.SocketMode != DefaultSocketMode {
		t.Errorf("SocketMode = %v, want %v", server.config.SocketMode, DefaultSocketMode)
	}
	if server.config.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want 30s", server.config.ReadTimeout)
	}
	if server.config.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want 30s", server.config.WriteTimeout)
	}
	if server.SocketPath() != "/tmp/x.sock" {
		t.Errorf("SocketPath() = %v, want /tmp/x.sock", server.SocketPath())
	}
	if server.Listening() {
		t.Error("Listening() = true before Start")
	}
}

func TestServer_StartServeStop(t *testing.T) {
	path := shortSocketPath(t)
	// a stale file from a previous run is replaced
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}

	server, err := NewServer(&Config{
		SocketPath: path,
		Handler:    testHandler(),
		SocketMode: 0600,
		Logger:     logging.Discard(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	deadline := time.Now().Add(5 * time.Second)
	for !server.Listening() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode()&os.ModeSocket == 0 {
		t.Errorf("mode = %v, want socket", info.Mode())
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
	}

	resp, err := socketClient(path).Get("http://unix/health")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok /health" {
		t.Errorf("body = %q, want %q", body, "ok /health")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("socket file still present: %v", err)
	}
}

func TestServer_StartDirectoryError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0600); err != nil {
		t.Fatal(err)
	}

	server, err := NewServer(&Config{
		SocketPath: filepath.Join(file, "sub", "s.sock"),
		Handler:    testHandler(),
		Logger:     logging.Discard(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := server.Start(); err == nil {
		t.Error("Expected error when the socket directory cannot be created")
	}
}
