package tftp

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	tftp "github.com/pin/tftp/v3"

	"static-file-server/config"
)

func TestRequestPath(t *testing.T) {
	cases := map[string]string{
		"boot.img":     "/boot.img",
		"/boot.img":    "/boot.img",
		" ofw/net.cfg": "/ofw/net.cfg",
		"":             "/",
	}
	for in, want := range cases {
		if got := requestPath(in); got != want {
			t.Fatalf("requestPath(%q) got=%q want=%q", in, got, want)
		}
	}
}

func startTestServer(t *testing.T) *Server {
	t.Helper()
	fs := memfs.New()
	for name, content := range map[string]string{
		"root/index.html":  "<h1>hi</h1>",
		"root/boot/kernel": "kernel bytes",
		"secret.txt":       "outside root",
	} {
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
	cfg, err := config.New("127.0.0.1:8080", "root", "index.html", []string{"netboot"})
	if err != nil {
		t.Fatalf("config.New error: %v", err)
	}
	srv, err := StartTFTPServer("127.0.0.1:0", cfg, fs, nil)
	if err != nil {
		t.Fatalf("StartTFTPServer error: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv
}

func fetch(t *testing.T, srv *Server, name string) (string, error) {
	t.Helper()
	c, err := tftp.NewClient(srv.Addr().String())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	c.SetTimeout(2 * time.Second)
	c.SetRetries(1)
	wt, err := c.Receive(name, "octet")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TestTFTPServesRoot(t *testing.T) {
	srv := startTestServer(t)

	cases := map[string]string{
		"boot/kernel":  "kernel bytes",
		"/boot/kernel": "kernel bytes",
		"/":            "<h1>hi</h1>",
		"netboot":      "<h1>hi</h1>",
	}
	for name, want := range cases {
		got, err := fetch(t, srv, name)
		if err != nil {
			t.Fatalf("fetch %q error: %v", name, err)
		}
		if got != want {
			t.Fatalf("fetch %q got=%q want=%q", name, got, want)
		}
	}
}

func TestTFTPRefusesTraversalAndMissing(t *testing.T) {
	srv := startTestServer(t)

	for _, name := range []string{"../secret.txt", "missing.bin"} {
		if _, err := fetch(t, srv, name); err == nil {
			t.Fatalf("fetch %q should fail", name)
		}
	}
}
