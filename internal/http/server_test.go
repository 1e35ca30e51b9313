package http

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServerServesUntilCancelled(t *testing.T) {
	handler, _ := setupSite(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(ServerConfig{ShutdownTimeout: time.Second}, handler, nil)
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/post/24314393831/your-results-are-ready-23andme")
	if err != nil {
		cancel()
		t.Fatalf("GET: %v", err)
	}
	body := readAll(t, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || body == "" {
		cancel()
		t.Fatalf("unexpected response %d", resp.StatusCode)
	}
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestServerRequiresHandler(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := NewServer(ServerConfig{}, nil, nil).Serve(context.Background(), ln); err == nil {
		t.Fatalf("expected error without handler")
	}
}
