package nfs

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gonfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"

	"static-file-server/utils"
)

// Number of file handles kept by the caching handler.
const handleCacheSize = 1024

// StartNFSServer exports baseDir read-only over NFSv3. MOUNT and NFS share
// the one TCP listener, so clients mount with
// "-o port=N,mountport=N,nfsvers=3,tcp".
func StartNFSServer(addr string, baseDir string, logger *log.Logger) (net.Listener, error) {
	return serveFS(addr, osfs.New(baseDir), baseDir, logger)
}

func serveFS(addr string, fs billy.Filesystem, label string, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = ":2049"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ln, err := utils.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := nfshelper.NewNullAuthHandler(newReadOnlyFS(fs))
	cached := nfshelper.NewCachingHandler(handler, handleCacheSize)

	go func() {
		logger.Printf("nfsd v3 listening on %s base=%q (read-only)", ln.Addr(), label)
		if err := gonfs.Serve(ln, cached); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Printf("nfsd serve error: %v", err)
		}
	}()
	return ln, nil
}
