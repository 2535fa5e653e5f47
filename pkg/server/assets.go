package server

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/hoi-launcher/shell/pkg/fragment"
)

// FileAssets serves assets from a file system such as web.Static().
func FileAssets(fsys fs.FS) http.Handler {
	return http.FileServerFS(fsys)
}

// SourceAssets serves assets through a fragment source, so pages kept in an
// HTTP origin or a bucket bring their stylesheets and scripts along.
func SourceAssets(src fragment.Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" || !fs.ValidPath(name) {
			http.NotFound(w, r)
			return
		}

		b, err := src.Fetch(r.Context(), name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "asset unavailable", http.StatusBadGateway)
			return
		}

		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		_, _ = w.Write(b)
	})
}
