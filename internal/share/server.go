package share

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"VectorBoard/internal/logging"
)

// Server serves a Hub over HTTP and optionally advertises it.
type Server struct {
	hub  *Hub
	ln   net.Listener
	srv  *http.Server
	mdns *mdns.Server
}

// Listen binds addr (":0" picks a free port) for hub.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &Server{
		hub: hub,
		ln:  ln,
		srv: &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

// Port is the bound TCP port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Serve blocks serving viewers until Close.
func (s *Server) Serve() error {
	logging.For("share").Info("viewer server listening", "port", s.Port())
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving viewers: %w", err)
	}
	return nil
}

// Advertise announces the server on the local network.
func (s *Server) Advertise(instance string) error {
	srv, err := Advertise(instance, s.Port())
	if err != nil {
		return err
	}
	s.mdns = srv
	return nil
}

// Close stops advertising, disconnects viewers and stops the server.
func (s *Server) Close() error {
	if s.mdns != nil {
		s.mdns.Shutdown()
	}
	s.hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Watch connects to a viewer endpoint such as "host:port" and calls fn with
// every snapshot until ctx ends or the connection drops.
func Watch(ctx context.Context, addr string, fn func(snapshot string)) error {
	url := "ws://" + addr + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading from %s: %w", url, err)
		}
		fn(string(data))
	}
}
