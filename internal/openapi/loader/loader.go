package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
)

// Loader implements pkgopenapi.Loader over file, fs.FS and HTTP sources.
// Construction helpers live in the top-level fixturegen package.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options. URL sources stay disabled
// unless a client or the HTTP fallback is configured.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		logger:  options.Logger,
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if l.timeout > 0 && client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	data, err := l.fetch(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s %q: %w", src.Kind(), src.Location(), err)
	}
	l.logger.Debug("openapi document loaded", "kind", string(src.Kind()), "location", src.Location(), "bytes", len(data))
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) fetch(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		return loadFromFS(ctx, l.files, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, errors.New("http support disabled")
		}
		return loadHTTP(ctx, l.client, src.Location(), l.timeout)
	}
	return nil, fmt.Errorf("unsupported source kind %q", src.Kind())
}
