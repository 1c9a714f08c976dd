// Package resolve maps request paths onto files below the served directory.
package resolve

import (
	"errors"
	"strings"

	"static-file-server/config"
)

// ErrTraversal is returned for any path containing "..".
var ErrTraversal = errors.New(`path contains ".."`)

type Target struct {
	// Logical is the path after index substitution, used for MIME guessing.
	Logical string
	// Path is Dir + "/" + Logical.
	Path string
}

// Resolve rejects traversal attempts, substitutes index aliases and joins the
// result onto cfg.Dir. It does no I/O.
//
// The guard is a plain substring test: "." segments, duplicate slashes and
// symlinks are left alone.
func Resolve(requestPath string, cfg *config.Config) (Target, error) {
	if strings.Contains(requestPath, "..") {
		return Target{}, ErrTraversal
	}
	logical := requestPath
	if cfg.IsIndexAlias(requestPath) {
		logical = cfg.Index
	}
	return Target{Logical: logical, Path: cfg.Dir + "/" + logical}, nil
}
