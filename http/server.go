package httpx

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"static-file-server/utils"
)

// Server owns the listening socket and the accept loop.
type Server struct {
	ln      net.Listener
	handler *Handler
	logger  *log.Logger
	done    chan struct{}
}

// StartHTTPServer binds addr and serves every accepted connection on its own
// goroutine. Bind errors are returned immediately; everything after that is
// only logged.
func StartHTTPServer(addr string, handler *Handler, logger *log.Logger) (*Server, error) {
	ln, err := utils.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{ln: ln, handler: handler, logger: logger, done: make(chan struct{})}
	go s.acceptLoop()
	return s, nil
}

func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Close stops accepting. Connections already being served run to completion.
func (s *Server) Close() error {
	err := s.ln.Close()
	<-s.done
	return err
}

func (s *Server) acceptLoop() {
	defer close(s.done)
	var backoff time.Duration
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// Same policy as net/http: keep going, but back off.
			if backoff == 0 {
				backoff = 5 * time.Millisecond
			} else if backoff *= 2; backoff > time.Second {
				backoff = time.Second
			}
			s.logf("accept error: %v; retrying in %v", err, backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0
		go s.serveConn(conn)
	}
}

// serveConn answers requests on conn one at a time, in arrival order, until
// the peer goes away, a request cannot be parsed or the client asks to close.
func (s *Server) serveConn(conn net.Conn) {
	id := uuid.NewString()[:8]
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			s.logf("conn %s %s: panic serving connection: %v\n%s", id, conn.RemoteAddr(), r, debug.Stack())
		}
	}()

	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)
	for {
		req, err := http.ReadRequest(br)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.logf("conn %s %s: error serving connection: %v", id, conn.RemoteAddr(), err)
			}
			return
		}
		res := s.handler.Serve(req)
		_, _ = io.Copy(io.Discard, req.Body)
		req.Body.Close()

		err = res.Write(bw)
		if err == nil {
			err = bw.Flush()
		}
		if err != nil {
			s.logf("conn %s %s: write error: %v", id, conn.RemoteAddr(), err)
			return
		}
		if res.Close {
			return
		}
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
