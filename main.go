package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"

	"static-file-server/config"
	httpx "static-file-server/http"
	"static-file-server/nfs"
	"static-file-server/tftp"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Dir is used as given, relative to the working directory.
	files := osfs.Default

	loggerHTTP := log.New(os.Stdout, "http ", log.LstdFlags)
	handler := httpx.NewHandler(cfg, files, loggerHTTP)
	srv, err := httpx.StartHTTPServer(cfg.Address, handler, loggerHTTP)
	if err != nil {
		log.Fatalf("start http failure: %v", err)
	}
	loggerHTTP.Printf("Listening on: %s, serving files from %q (index %q, aliases %s)",
		srv.Addr(), cfg.Dir, cfg.Index, strings.Join(cfg.Aliases(), " "))

	if cfg.TFTPAddress != "" {
		loggerTFTP := log.New(os.Stdout, "tftp ", log.LstdFlags)
		ts, err := tftp.StartTFTPServer(cfg.TFTPAddress, cfg, files, loggerTFTP)
		if err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
		defer ts.Close()
	}

	if cfg.NFSAddress != "" {
		loggerNFS := log.New(os.Stdout, "nfs ", log.LstdFlags)
		ln, err := nfs.StartNFSServer(cfg.NFSAddress, cfg.Dir, loggerNFS)
		if err != nil {
			log.Fatalf("start nfs failure: %v", err)
		}
		defer ln.Close()
	}

	// Block until termination signal to keep goroutine servers alive
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, exiting", sig)
	srv.Close()
}
