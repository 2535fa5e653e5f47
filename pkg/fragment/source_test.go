package fragment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	lerrors "github.com/hoi-launcher/shell/internal/errors"
)

func TestPagePath(t *testing.T) {
	if got := PagePath("mods"); got != "pages/mods.html" {
		t.Errorf("PagePath() = %q", got)
	}
}

func TestFSSource(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"pages/mods.html": {Data: []byte(`<div class="mods-container"></div>`)},
	})

	b, err := src.Fetch(context.Background(), "pages/mods.html")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(string(b), "mods-container") {
		t.Errorf("Fetch() = %q", b)
	}

	_, err = src.Fetch(context.Background(), "pages/missing.html")
	if !lerrors.HasCode(err, lerrors.CodeFragmentFetch) {
		t.Errorf("missing file error = %v, want %s", err, lerrors.CodeFragmentFetch)
	}
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/pages/settings.html" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `<div class="settings-container"></div>`)
	}))
	defer ts.Close()

	src, err := NewHTTPSource(ts.URL+"/app", nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := src.Fetch(context.Background(), "pages/settings.html")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(string(b), "settings-container") {
		t.Errorf("Fetch() = %q", b)
	}

	_, err = src.Fetch(context.Background(), "pages/nope.html")
	if !lerrors.HasCode(err, lerrors.CodeFragmentFetch) {
		t.Errorf("404 error = %v, want %s", err, lerrors.CodeFragmentFetch)
	}
}

type fakeS3 struct {
	objects map[string]string
	gotKey  string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"launcher/v1/pages/mods.html": `<div class="mods-container"></div>`,
	}}
	src := NewS3Source(fake, "launcher", "v1")

	b, err := src.Fetch(context.Background(), "pages/mods.html")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if fake.gotKey != "launcher/v1/pages/mods.html" {
		t.Errorf("requested %q", fake.gotKey)
	}
	if !strings.Contains(string(b), "mods-container") {
		t.Errorf("Fetch() = %q", b)
	}

	if _, err := src.Fetch(context.Background(), "pages/settings.html"); !lerrors.HasCode(err, lerrors.CodeFragmentFetch) {
		t.Errorf("missing object error = %v", err)
	}
}

func TestS3SourceAgainstEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/launcher/pages/mods.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<div class="mods-container"></div>`)
	}))
	defer ts.Close()

	client := NewS3Client(S3Config{
		Bucket:          "launcher",
		Endpoint:        ts.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		PathStyle:       true,
	})
	src := NewS3Source(client, "launcher", "")

	b, err := src.Fetch(context.Background(), "pages/mods.html")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(b) != `<div class="mods-container"></div>` {
		t.Errorf("Fetch() = %q", b)
	}
}
