package nfs

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

// readOnlyFS hides every mutating call of the wrapped filesystem. It does
// not implement billy.Change, so the NFS handler reports SETATTR as
// unsupported.
type readOnlyFS struct {
	billy.Filesystem
}

func newReadOnlyFS(fs billy.Filesystem) billy.Filesystem {
	return readOnlyFS{fs}
}

func (readOnlyFS) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}

func (readOnlyFS) Create(string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (r readOnlyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&writeFlags != 0 {
		return nil, billy.ErrReadOnly
	}
	return r.Filesystem.OpenFile(filename, flag, perm)
}

func (readOnlyFS) Rename(string, string) error { return billy.ErrReadOnly }

func (readOnlyFS) Remove(string) error { return billy.ErrReadOnly }

func (readOnlyFS) TempFile(string, string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (readOnlyFS) MkdirAll(string, os.FileMode) error { return billy.ErrReadOnly }

func (readOnlyFS) Symlink(string, string) error { return billy.ErrReadOnly }

func (r readOnlyFS) Chroot(path string) (billy.Filesystem, error) {
	fs, err := r.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return newReadOnlyFS(fs), nil
}
