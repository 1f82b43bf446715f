// Package fakeserver is a small in-memory redis server used by tests and by
// the serve subcommand. It speaks RESP through redcon and implements only the
// commands the client exercises.
package fakeserver

import (
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/tidwall/redcon"

	"respclient/internal/common"
	"respclient/pkg/connection"
	"respclient/pkg/logger"
)

type Server struct {
	ln   net.Listener
	srv  *redcon.Server
	db   *DB
	done chan error

	closeOnce sync.Once
	err       error
}

// readyListener closes ready on the first Accept, which redcon only reaches
// once the server is fully set up and can be closed.
type readyListener struct {
	net.Listener
	once  sync.Once
	ready chan struct{}
}

func (l *readyListener) Accept() (net.Conn, error) {
	l.once.Do(func() { close(l.ready) })
	return l.Listener.Accept()
}

// Start listens on addr (use "127.0.0.1:0" for a random port) and serves in
// the background.
func Start(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		ln:   ln,
		db:   NewDB(),
		done: make(chan error, 1),
	}
	s.srv = redcon.NewServer(ln.Addr().String(), s.handle, s.accept, s.closed)

	rl := &readyListener{Listener: ln, ready: make(chan struct{})}
	go func() {
		s.done <- s.srv.Serve(rl)
	}()
	select {
	case <-rl.ready:
	case err := <-s.done:
		return nil, err
	}
	logger.Infof("[fakeserver] listening on %s", ln.Addr())
	return s, nil
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Endpoint returns an endpoint a client can dial.
func (s *Server) Endpoint() connection.Endpoint {
	addr := s.ln.Addr().(*net.TCPAddr)
	return connection.Endpoint{Host: addr.IP.String(), Port: addr.Port}
}

func (s *Server) DB() *DB {
	return s.db
}

// Wait blocks until the server stops.
func (s *Server) Wait() error {
	err := <-s.done
	s.done <- err
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Close stops accepting and drops every client connection.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.err = s.srv.Close()
		_ = s.Wait()
	})
	return s.err
}

func (s *Server) accept(conn redcon.Conn) bool {
	logger.Debugf("[fakeserver] client %s connected", conn.RemoteAddr())
	return true
}

func (s *Server) closed(conn redcon.Conn, err error) {
	logger.Debugf("[fakeserver] client %s closed: %v", conn.RemoteAddr(), err)
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	// redcon 会复用读缓冲区，存入 DB 前必须拷贝
	cmdLine := common.CloneArgs(cmd.Args)
	logger.Debugf("[fakeserver] %s", common.FormatCmdLine(cmdLine))

	if strings.EqualFold(string(cmdLine[0]), "quit") {
		conn.WriteString("OK")
		_ = conn.Close()
		return
	}
	conn.WriteRaw(s.db.Exec(cmdLine).ToBytes())
}
