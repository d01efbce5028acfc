package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"stockboard/internal/domain"
)

// DataSource is the load() half of the pipeline: one strategy per execution
// context, chosen once at startup.
type DataSource interface {
	Load(ctx context.Context) ([]byte, error)
	Describe() string
}

// NewDataSource picks the strategy from the data spec: URLs fetch over HTTP,
// anything else reads the local filesystem.
func NewDataSource(spec string, client *http.Client) DataSource {
	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		if client == nil {
			client = &http.Client{Timeout: 15 * time.Second}
		}
		return &HTTPSource{URL: spec, Client: client}
	}
	return &FileSource{Path: spec}
}

// FileSource reads the snapshot from a local file, the analogue of the
// user-selected-file mode.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(_ context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, domain.Transportf("read snapshot %s: %v", s.Path, err)
	}
	return raw, nil
}

func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

// HTTPSource fetches the snapshot over plain GET with a cache-defeating query
// parameter and a no-cache directive, the served-page mode.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, domain.Transportf("bad snapshot URL %s: %v", s.URL, err)
	}
	q := u.Query()
	q.Set("_", strconv.FormatInt(time.Now().UnixNano(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, domain.Transportf("build snapshot request: %v", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.Timeoutf("snapshot request timed out")
		}
		return nil, domain.Transportf("fetch snapshot: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.Transportf("fetch snapshot: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Transportf("read snapshot response: %v", err)
	}
	return raw, nil
}

func (s *HTTPSource) Describe() string {
	return fmt.Sprintf("http:%s", s.URL)
}
