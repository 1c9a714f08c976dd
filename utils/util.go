package utils

import (
	"mime"
	"path"
	"strings"
)

// FallbackContentType is used when the extension is unknown or absent.
const FallbackContentType = "text/plain"

// ContentType guesses a MIME type from the extension of p only; the file is
// never inspected. Parameters such as charset are dropped.
func ContentType(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return FallbackContentType
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return FallbackContentType
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
