package httpx

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"

	"static-file-server/config"
	"static-file-server/resolve"
	"static-file-server/utils"
)

const (
	bodyBadRequest = "400 Bad Request"
	bodyNotFound   = "404 Not Found"
)

// Handler turns one parsed request into one response. It is safe for
// concurrent use: it only reads cfg and the filesystem.
type Handler struct {
	cfg    *config.Config
	fs     billy.Basic
	logger *log.Logger
}

// NewHandler serves files below cfg.Dir read through fs. Production code
// passes osfs.Default so Dir is interpreted like any OS path.
func NewHandler(cfg *config.Config, fs billy.Basic, logger *log.Logger) *Handler {
	return &Handler{cfg: cfg, fs: fs, logger: logger}
}

// Serve never fails: bad paths become 400 and unreadable files 404.
func (h *Handler) Serve(req *http.Request) *http.Response {
	p := req.URL.Path
	h.logf("Request: %s", p)

	target, err := resolve.Resolve(p, h.cfg)
	if err != nil {
		h.logf("Invalid path: %s", p)
		return newResponse(req, http.StatusBadRequest, []byte(bodyBadRequest))
	}

	data, err := h.readFile(target.Path)
	if err != nil {
		// Absence, permissions and directories are all reported the same way.
		h.logf("File not found: %s (%v)", target.Logical, err)
		return newResponse(req, http.StatusNotFound, []byte(bodyNotFound))
	}

	mimeType := utils.ContentType(target.Logical)
	if h.cfg.Verbose {
		h.logf("%s: %s -> %s, %s", target.Logical, target.Path, mimeType, humanize.Bytes(uint64(len(data))))
	}

	res := newResponse(req, http.StatusOK, data)
	res.Header.Set("Content-Type", mimeType)
	return res
}

func (h *Handler) readFile(name string) ([]byte, error) {
	f, err := h.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func newResponse(req *http.Request, code int, body []byte) *http.Response {
	res := &http.Response{
		StatusCode:    code,
		Status:        strconv.Itoa(code) + " " + http.StatusText(code),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
		Close:         req.Close,
	}
	// An HTTP/1.0 client asking for keep-alive has to be told it was honoured.
	if !req.Close && !req.ProtoAtLeast(1, 1) {
		res.Header.Set("Connection", "keep-alive")
	}
	return res
}
