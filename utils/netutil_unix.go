//go:build unix

package utils

import (
	"errors"

	"golang.org/x/sys/unix"
)

func bindHint(err error) string {
	switch {
	case errors.Is(err, unix.EADDRINUSE):
		return "address already in use"
	case errors.Is(err, unix.EACCES):
		return "permission denied (privileged port?)"
	case errors.Is(err, unix.EADDRNOTAVAIL):
		return "address not available on this host"
	}
	return ""
}
