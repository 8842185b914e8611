// static file handlers: file bytes plus a MIME type inferred from the
// extension
package static

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wilson1070033/webserver/server/protocol"
	"github.com/wilson1070033/webserver/server/router"
)

// File returns a handler serving one file from disk; a missing or
// unreadable file answers with the canned 404
func File(path string) router.Handler {
	return router.HandlerFunc(func(req *protocol.Request, res *protocol.Response) {
		data, err := os.ReadFile(path)
		if err != nil {
			*res = *protocol.NotFound()
			return
		}
		res.SetContent(data, mimeType(path))
	})
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	}
	return "text/plain"
}
