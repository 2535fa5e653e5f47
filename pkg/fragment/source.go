package fragment

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
)

// Source retrieves fragment files by document-relative path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// PagePath returns the path of the fragment for a page id.
func PagePath(id string) string {
	return "pages/" + id + ".html"
}

func fetchError(path string, err error) error {
	return lerrors.New(lerrors.CodeFragmentFetch).WithDetailf("fetch %s", path).Wrap(err)
}

// FSSource reads fragments from a file system.
type FSSource struct {
	FS fs.FS
}

// NewFSSource creates a Source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{FS: fsys}
}

// Fetch reads path from the file system.
func (s *FSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(s.FS, path)
	if err != nil {
		return nil, fetchError(path, err)
	}
	return b, nil
}

// HTTPSource fetches fragments relative to a base URL.
type HTTPSource struct {
	BaseURL *url.URL
	Client  *http.Client
}

// NewHTTPSource creates a Source rooted at base. A nil client means
// http.DefaultClient.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, lerrors.New(lerrors.CodeConfigInvalid).WithDetailf("fragment base URL %q", base).Wrap(err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{BaseURL: u, Client: client}, nil
}

// Fetch GETs path relative to the base URL. Any non-2xx status is a fault.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fetchError(path, err)
	}
	target := s.BaseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fetchError(path, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fetchError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fetchError(path, fmt.Errorf("unexpected status %s", resp.Status))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchError(path, err)
	}
	return b, nil
}
