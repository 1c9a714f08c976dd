package config

import (
	"errors"
	"flag"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Address != "127.0.0.1:8080" || c.Dir != "Public" || c.Index != "index.html" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.TFTPAddress != "" || c.NFSAddress != "" || c.Verbose {
		t.Fatalf("optional services should be off by default: %+v", c)
	}
	if got, want := c.Aliases(), []string{"/"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("aliases got=%v want=%v", got, want)
	}
}

func TestParseFlags(t *testing.T) {
	args := []string{
		"--address", "0.0.0.0:9000",
		"-d", "/srv/www",
		"--index", "home.htm",
		"--paths", "about,/contact",
		"-p", "docs",
		"--tftp-address", "0.0.0.0:6969",
		"-v",
		"blog",
	}
	c, err := Parse(args, io.Discard)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Address != "0.0.0.0:9000" || c.Dir != "/srv/www" || c.Index != "home.htm" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.TFTPAddress != "0.0.0.0:6969" || !c.Verbose {
		t.Fatalf("unexpected optional settings: %+v", c)
	}
	want := []string{"/", "/about", "/blog", "/contact", "/docs"}
	if got := c.Aliases(); !reflect.DeepEqual(got, want) {
		t.Fatalf("aliases got=%v want=%v", got, want)
	}
}

func TestParseInvalidAddress(t *testing.T) {
	for _, addr := range []string{"localhost:8080", ":8080", "127.0.0.1", "127.0.0.1:http"} {
		_, err := Parse([]string{"--address", addr}, io.Discard)
		if err == nil {
			t.Fatalf("expected error for address %q", addr)
		}
		if !strings.Contains(err.Error(), addr) {
			t.Fatalf("error should name the address: %v", err)
		}
	}
	if _, err := Parse([]string{"--nfs-address", "nope"}, io.Discard); err == nil {
		t.Fatalf("expected error for bad nfs address")
	}
}

func TestParseHelp(t *testing.T) {
	var out strings.Builder
	_, err := Parse([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "-paths") {
		t.Fatalf("usage should list -paths: %q", out.String())
	}
}

func TestIsIndexAlias(t *testing.T) {
	c, err := New("127.0.0.1:8080", "Public", "index.html", []string{"about"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !c.IsIndexAlias("/") || !c.IsIndexAlias("/about") {
		t.Fatalf("expected / and /about to be aliases")
	}
	if c.IsIndexAlias("about") || c.IsIndexAlias("/about/") {
		t.Fatalf("alias match must be exact")
	}
}

func TestNormalizeAlias(t *testing.T) {
	if got := NormalizeAlias("x"); got != "/x" {
		t.Fatalf("NormalizeAlias got=%q want=/x", got)
	}
	if got := NormalizeAlias("/x"); got != "/x" {
		t.Fatalf("NormalizeAlias got=%q want=/x", got)
	}
}
