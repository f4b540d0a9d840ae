package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"skillhub/internal/microservices/realtime"
)

// TCPServer accepts newline-delimited JSON clients onto the shared realtime hub
type TCPServer struct {
	Addr     string
	hub      *realtime.Hub
	logger   *slog.Logger
	listener net.Listener

	mu    sync.Mutex
	conns map[*ClientConnection]struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewServer(addr string, hub *realtime.Hub, logger *slog.Logger) *TCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TCPServer{
		Addr:   addr,
		hub:    hub,
		logger: logger,
		conns:  make(map[*ClientConnection]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Listen binds the address and returns the bound one (useful with port 0)
func (s *TCPServer) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP server: %w", err)
	}
	s.listener = listener
	s.logger.Info("tcp_server_listening", "addr", listener.Addr().String())
	return listener.Addr(), nil
}

// Serve accepts connections until Stop is called
func (s *TCPServer) Serve() error {
	if s.listener == nil {
		return errors.New("tcp server is not listening")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn("tcp_accept_failed", "error", err.Error())
			continue
		}
		s.wg.Add(1)
		go func(conn net.Conn) {
			defer s.wg.Done()
			s.handleConnection(conn)
		}(conn)
	}
}

// Start binds and serves; it blocks until Stop
func (s *TCPServer) Start() error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

func (s *TCPServer) handleConnection(conn net.Conn) {
	client := NewClientConnection(conn, s.hub, s.logger)

	s.mu.Lock()
	s.conns[client] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, client)
		s.mu.Unlock()
	}()

	s.hub.Connect(client.ID, client)
	client.Listen(s.ctx)
}

// StopAccepting closes the listener; open connections keep running
func (s *TCPServer) StopAccepting() {
	s.closeOnce.Do(func() {
		if s.listener != nil {
			s.listener.Close()
		}
	})
}

// Stop closes the listener and every connection still open, then waits for the handlers
func (s *TCPServer) Stop() {
	s.StopAccepting()
	s.cancel()

	s.mu.Lock()
	for client := range s.conns {
		client.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("tcp_server_stopped")
}
