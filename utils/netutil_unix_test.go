//go:build unix

package utils

import (
	"strings"
	"testing"
)

func TestListenAddressInUse(t *testing.T) {
	ln, err := Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen error: %v", err)
	}
	defer ln.Close()

	_, err = Listen("tcp", ln.Addr().String())
	if err == nil {
		t.Fatalf("expected second bind on %s to fail", ln.Addr())
	}
	if !strings.Contains(err.Error(), "address already in use") {
		t.Fatalf("error should explain the bind failure: %v", err)
	}
}
