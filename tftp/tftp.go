package tftp

import (
	"io"
	"log"
	"net"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	tftp "github.com/pin/tftp/v3"

	"static-file-server/config"
	"static-file-server/resolve"
	"static-file-server/utils"
)

// requestPath turns a TFTP filename into the request path the resolver
// expects. Clients usually send names without a leading slash.
func requestPath(filename string) string {
	name := strings.TrimSpace(filename)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return name
}

func serveFile(fs billy.Basic, path string, rf io.ReaderFrom) error {
	if fi, err := fs.Stat(path); err == nil {
		if ot, ok := rf.(tftp.OutgoingTransfer); ok {
			ot.SetSize(fi.Size())
		}
	}
	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = rf.ReadFrom(f)
	return err
}

func readHandler(cfg *config.Config, fs billy.Basic, logger *log.Logger) func(string, io.ReaderFrom) error {
	return func(filename string, rf io.ReaderFrom) error {
		p := requestPath(filename)
		target, err := resolve.Resolve(p, cfg)
		if err != nil {
			logger.Printf("Invalid path: %s", p)
			return err
		}
		if err := serveFile(fs, target.Path, rf); err != nil {
			logger.Printf("read %s failed: %v", target.Logical, err)
			return err
		}
		logger.Printf("sent %s", target.Path)
		return nil
	}
}

// Server is a read-only TFTP view of the served directory.
type Server struct {
	srv  *tftp.Server
	conn *net.UDPConn
}

func (s *Server) Addr() net.Addr { return s.conn.LocalAddr() }

func (s *Server) Close() {
	s.conn.Close()
	s.srv.Shutdown()
}

// StartTFTPServer binds addr over UDP and serves read requests through the
// same resolver as HTTP, so aliases and the traversal guard apply. Write
// requests are refused.
func StartTFTPServer(addr string, cfg *config.Config, fs billy.Basic, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	conn, err := utils.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}

	srv := tftp.NewServer(readHandler(cfg, fs, logger), nil)
	srv.SetTimeout(5 * time.Second)

	go func() {
		logger.Printf("TFTP server listening on %s, serving=%q", conn.LocalAddr(), cfg.Dir)
		if err := srv.Serve(conn); err != nil {
			logger.Printf("TFTP server error: %v", err)
		}
	}()
	return &Server{srv: srv, conn: conn}, nil
}
