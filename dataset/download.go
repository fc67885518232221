package dataset

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly"
)

// DefaultBaseURL is where IMDb publishes the non-commercial dataset
const DefaultBaseURL = "https://datasets.imdbws.com/"

// DefaultDownloadTimeout bounds the transfer of a single dataset file. The
// largest files are several hundred megabytes.
const DefaultDownloadTimeout = 3 * time.Hour

// Downloader fetches dataset files that are not yet on disk
type Downloader struct {
	baseURL string
	timeout time.Duration
}

// NewDownloader creates a downloader for files published under baseURL
func NewDownloader(baseURL string) *Downloader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Downloader{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		timeout: DefaultDownloadTimeout,
	}
}

// SetTimeout overrides DefaultDownloadTimeout for every file fetched afterwards
func (d *Downloader) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.timeout = timeout
	}
}

// FetchMissing downloads every file in files that does not exist in dir and
// returns the paths it wrote. Existing files are never fetched again.
// Cancelling ctx aborts a transfer in progress.
func (d *Downloader) FetchMissing(ctx context.Context, dir string, files []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	var fetched []string
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fetched, &IOError{Op: "stat", Path: dest, Err: err}
		}

		if err := d.fetch(ctx, d.baseURL+name, dest); err != nil {
			return fetched, err
		}
		fetched = append(fetched, dest)
	}
	return fetched, nil
}

// contextTransport binds every request of a collector to ctx
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func (d *Downloader) fetch(ctx context.Context, url, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	c := colly.NewCollector(colly.MaxBodySize(0))
	c.WithTransport(contextTransport{ctx: ctx, base: http.DefaultTransport})
	c.SetRequestTimeout(d.timeout)
	tmp := dest + ".part"

	var saveErr error
	c.OnRequest(func(r *colly.Request) {
		log.Println("Downloading:", r.URL)
	})

	c.OnResponse(func(r *colly.Response) {
		log.Printf("Response received: %d (%d bytes)", r.StatusCode, len(r.Body))
		saveErr = r.Save(tmp)
	})

	if err := c.Visit(url); err != nil {
		os.Remove(tmp)
		return &IOError{Op: "download", Path: url, Err: err}
	}
	if saveErr != nil {
		os.Remove(tmp)
		return &IOError{Op: "write", Path: tmp, Err: saveErr}
	}
	if err := os.Rename(tmp, dest); err != nil {
		return &IOError{Op: "rename", Path: dest, Err: err}
	}
	return nil
}
