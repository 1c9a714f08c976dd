package config

import (
	"flag"
	"fmt"
	"io"
	"net/netip"
	"sort"
	"strings"
)

const (
	DefaultAddress = "127.0.0.1:8080"
	DefaultDir     = "Public"
	DefaultIndex   = "index.html"
)

// Config is built once at start-up and shared read-only by every handler.
type Config struct {
	Address string
	Dir     string
	Index   string

	// Optional mirrors of Dir; empty disables them.
	TFTPAddress string
	NFSAddress  string

	Verbose bool

	aliases map[string]struct{}
}

// New validates address and builds a Config whose alias set holds "/" plus
// every entry of paths, each normalized to start with "/".
func New(address, dir, index string, paths []string) (*Config, error) {
	if err := checkAddr(address); err != nil {
		return nil, err
	}
	c := &Config{
		Address: address,
		Dir:     dir,
		Index:   index,
		aliases: map[string]struct{}{"/": {}},
	}
	for _, p := range paths {
		c.aliases[NormalizeAlias(p)] = struct{}{}
	}
	return c, nil
}

// NormalizeAlias prefixes p with "/" when missing.
func NormalizeAlias(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// IsIndexAlias reports whether a request for p should be served the index file.
func (c *Config) IsIndexAlias(p string) bool {
	_, ok := c.aliases[p]
	return ok
}

// Aliases returns the alias set, sorted.
func (c *Config) Aliases() []string {
	out := make([]string, 0, len(c.aliases))
	for p := range c.aliases {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func checkAddr(addr string) error {
	if _, err := netip.ParseAddrPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}

// pathList collects --paths values; each occurrence may hold a comma
// separated list.
type pathList []string

func (l *pathList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *pathList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

// Parse builds a Config from command-line arguments (without the program
// name). Usage and parse errors are written to output.
func Parse(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("static-file-server", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		address, dir, index string
		tftpAddr, nfsAddr   string
		verbose             bool
		paths               pathList
	)
	fs.StringVar(&address, "address", DefaultAddress, "IP address to bind to")
	fs.StringVar(&address, "a", DefaultAddress, "shorthand for -address")
	fs.StringVar(&dir, "dir", DefaultDir, "Directory to serve files from")
	fs.StringVar(&dir, "d", DefaultDir, "shorthand for -dir")
	fs.StringVar(&index, "index", DefaultIndex, "Default file to serve")
	fs.StringVar(&index, "i", DefaultIndex, "shorthand for -index")
	fs.Var(&paths, "paths", "Paths equivalent to /index.html (repeatable, comma separated)")
	fs.Var(&paths, "p", "shorthand for -paths")
	fs.StringVar(&tftpAddr, "tftp-address", "", "Serve the directory over TFTP on this address (disabled if empty)")
	fs.StringVar(&nfsAddr, "nfs-address", "", "Export the directory read-only over NFS on this address (disabled if empty)")
	fs.BoolVar(&verbose, "verbose", false, "Log debug lines")
	fs.BoolVar(&verbose, "v", false, "shorthand for -verbose")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// "--paths about contact": trailing words are aliases too.
	paths = append(paths, fs.Args()...)

	c, err := New(address, dir, index, paths)
	if err != nil {
		return nil, err
	}
	if tftpAddr != "" {
		if err := checkAddr(tftpAddr); err != nil {
			return nil, fmt.Errorf("tftp: %w", err)
		}
	}
	if nfsAddr != "" {
		if err := checkAddr(nfsAddr); err != nil {
			return nil, fmt.Errorf("nfs: %w", err)
		}
	}
	c.TFTPAddress = tftpAddr
	c.NFSAddress = nfsAddr
	c.Verbose = verbose
	return c, nil
}
