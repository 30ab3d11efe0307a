package mcp

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestParseTransport(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Transport
		wantErr bool
	}{
		"empty":   {in: "", want: TransportHTTP},
		"http":    {in: "HTTP ", want: TransportHTTP},
		"stdio":   {in: "stdio", want: TransportStdio},
		"unknown": {in: "pigeon", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTransport(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHTTPURL(t *testing.T) {
	addr := &net.TCPAddr{IP: net.IPv4zero, Port: 9123}

	h := HTTP{Host: "0.0.0.0", Path: "mcp"}
	if got, want := h.url(addr), "http://127.0.0.1:9123/mcp"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}

	h = HTTP{Host: "localhost", Port: 9123, Cert: "c.pem", Key: "k.pem"}
	if got, want := h.url(addr), "https://localhost:9123/mcp"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestHTTPValidate(t *testing.T) {
	if err := (HTTP{Cert: "c.pem"}).validate(); err == nil {
		t.Fatalf("expected error for cert without key")
	}
	if err := (HTTP{Port: 70000}).validate(); err == nil {
		t.Fatalf("expected error for out of range port")
	}
	if err := (HTTP{Port: 8080}).validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunnerServesUntilCanceled(t *testing.T) {
	svc, _ := newTestService(t)

	listening := make(chan string, 1)
	r := Runner{
		Service:   svc.app,
		Transport: TransportHTTP,
		HTTP: HTTP{
			Host: "127.0.0.1",
			OnListening: func(_ net.Addr, url string) {
				listening <- url
			},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	select {
	case <-listening:
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("runner never started listening")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
}

func TestRunnerRequiresService(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
}
