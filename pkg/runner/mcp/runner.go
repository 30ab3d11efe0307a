package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/bento/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const instructions = `Plan the day in a morning box (240 minutes) and an evening box (180 minutes); anything else waits in tomorrow.
Start intake with extract_tasks or queue_tasks, answer each duration with submit_duration, and when a task does not fit answer choose_overflow.
Forced swaps are finished with toggle_candidate and confirm_selection. get_plan always reports the current mode.`

// ParseTransport maps user input onto a Transport. Empty input means HTTP.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", s)
	}
}

// HTTP holds the streamable HTTP listener settings.
type HTTP struct {
	Host string
	Port int
	Path string
	Cert string
	Key  string

	// OnListening is called with the bound address and the URL clients dial.
	OnListening func(addr net.Addr, url string)
}

func (h HTTP) path() string {
	p := strings.TrimSpace(h.Path)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (h HTTP) host() string {
	if host := strings.TrimSpace(h.Host); host != "" {
		return host
	}
	return "127.0.0.1"
}

func (h HTTP) tls() bool {
	return h.Cert != "" && h.Key != ""
}

func (h HTTP) validate() error {
	if (h.Cert == "") != (h.Key == "") {
		return errors.New("both http tls cert and key must be provided")
	}
	if h.Port < 0 || h.Port > 65535 {
		return fmt.Errorf("invalid http port %d", h.Port)
	}
	return nil
}

// url renders the endpoint with a host the user can dial.
func (h HTTP) url(a net.Addr) string {
	scheme := "http"
	if h.tls() {
		scheme = "https"
	}
	host := h.host()
	port := strconv.Itoa(h.Port)
	if tcp, ok := a.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
			if tcp.IP != nil && !tcp.IP.IsUnspecified() {
				host = tcp.IP.String()
			}
		}
	}
	return scheme + "://" + net.JoinHostPort(host, port) + h.path()
}

// Runner coordinates MCP server startup.
type Runner struct {
	Service   *app.Service
	Name      string
	Version   string
	Transport Transport
	HTTP      HTTP
}

// Do builds the server and blocks serving it until ctx is done.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	srv := r.server()

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		stdio := server.NewStdioServer(srv)
		err := stdio.Listen(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown MCP transport %q", r.Transport)
	}
}

func (r Runner) server() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "bento"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	h := r.HTTP
	if err := h.validate(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(h.path(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", net.JoinHostPort(h.host(), strconv.Itoa(h.Port)))
	if err != nil {
		return err
	}
	if h.OnListening != nil {
		h.OnListening(ln.Addr(), h.url(ln.Addr()))
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	})
	defer stop()

	if h.tls() {
		err = httpSrv.ServeTLS(ln, h.Cert, h.Key)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
