package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// DefaultTimeout bounds a whole archive download.
const DefaultTimeout = 10 * time.Minute

// HTTPFetcher downloads archives over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
	log    *output.Writer
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
// A zero timeout means DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration, log *output.Writer) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = output.Discard()
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch downloads loc.URL into dest.
func (f *HTTPFetcher) Fetch(ctx context.Context, loc toolchain.ArchiveLocation, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL, nil)
	if err != nil {
		return ndkerrors.Download(loc.URL, err)
	}
	req.Header.Set("User-Agent", "ndkpkg")

	resp, err := f.client.Do(req)
	if err != nil {
		return ndkerrors.Download(loc.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ndkerrors.Download(loc.URL, fmt.Errorf("unexpected HTTP status %s", resp.Status))
	}

	out, err := os.Create(dest)
	if err != nil {
		return ndkerrors.Download(loc.URL, err)
	}
	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return ndkerrors.Download(loc.URL, err)
	}

	f.log.Debug("downloaded %s (%s)", loc.FileName, humanize.Bytes(uint64(n)))
	return nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
