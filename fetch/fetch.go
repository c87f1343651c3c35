// Package fetch downloads remote images through a fixed-size worker
// pool fed by a bounded job queue. It is the only process-wide shared
// resource the conversion core touches: converters either enqueue a
// job and correlate the result by sequence number, or use the
// synchronous Fetch convenience that blocks the calling thread for a
// single file.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned for operations on a cancelled downloader.
var ErrClosed = errors.New("fetch: downloader closed")

// A Result describes the outcome of one download job, correlated to
// its Enqueue call by Seq.
type Result struct {
	Seq       int
	URL       string
	Success   bool
	LocalPath string
	Err       error
}

// Config tunes the downloader. The zero value gets sensible defaults.
type Config struct {
	// Workers is the pool size. Default 4.
	Workers int

	// QueueSize bounds the job queue. Enqueue blocks when it is full,
	// for at most Timeout. Default 64.
	QueueSize int

	// Timeout limits a single download. Default 30s.
	Timeout time.Duration

	// Client overrides the HTTP client. Default http.DefaultClient
	// wrapped with Timeout.
	Client *http.Client

	// OnResult, when set, is invoked for every finished job from a
	// worker goroutine.
	OnResult func(Result)

	// Logger for per-job diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

type job struct {
	seq  int
	url  string
	dir  string
	done chan Result
}

// A Downloader owns the worker pool. Create with New, stop with
// Cancel (drains the queue and waits for the workers to exit).
type Downloader struct {
	cfg    Config
	jobs   chan job
	group  *errgroup.Group
	cancel context.CancelFunc

	mu          sync.Mutex
	outstanding int
	idle        chan struct{} // closed whenever outstanding drops to 0
	closed      bool
}

// New starts the worker pool.
func New(cfg Config) *Downloader {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	d := &Downloader{
		cfg:    cfg,
		jobs:   make(chan job, cfg.QueueSize),
		group:  g,
		cancel: cancel,
		idle:   closedChan(),
	}
	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			d.worker(ctx)
			return nil
		})
	}
	return d
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (d *Downloader) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			res := d.download(ctx, j)
			if d.cfg.OnResult != nil {
				d.cfg.OnResult(res)
			}
			if j.done != nil {
				j.done <- res
			}
			d.finish()
		}
	}
}

func (d *Downloader) addJob() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	if d.outstanding == 0 {
		d.idle = make(chan struct{})
	}
	d.outstanding++
	return true
}

func (d *Downloader) finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outstanding--
	if d.outstanding == 0 {
		close(d.idle)
	}
}

// Enqueue queues one download. It blocks while the queue is full,
// giving up and returning false after Config.Timeout, and returns
// false once the downloader is cancelled. Results are
// delivered through the OnResult callback, keyed by seq.
func (d *Downloader) Enqueue(rawURL, dir string, seq int) bool {
	if !d.addJob() {
		return false
	}
	select {
	case d.jobs <- job{seq: seq, url: rawURL, dir: dir}:
		return true
	case <-time.After(d.cfg.Timeout):
		d.finish()
		return false
	}
}

// Wait blocks until every enqueued job has finished or the timeout
// elapses, reporting whether the queue drained.
func (d *Downloader) Wait(timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		d.mu.Lock()
		n := d.outstanding
		idle := d.idle
		d.mu.Unlock()
		if n == 0 {
			return true
		}
		select {
		case <-idle:
		case <-deadline.C:
			return false
		}
	}
}

// Cancel drains pending jobs without running them, stops the workers,
// and returns the number of jobs dropped. Safe to call more than once.
func (d *Downloader) Cancel() int {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	dropped := 0
	for {
		select {
		case j, ok := <-d.jobs:
			if !ok {
				_ = d.group.Wait()
				return dropped
			}
			if j.done != nil {
				j.done <- Result{Seq: j.seq, URL: j.url, Err: ErrClosed}
			}
			d.finish()
			dropped++
		default:
			_ = d.group.Wait()
			return dropped
		}
	}
}

// Fetch downloads a single file synchronously, blocking the calling
// goroutine, and returns the filename relative to dir. This is the
// path the conversion core uses: one image at a time, no downloader
// lock held across an element emission.
func (d *Downloader) Fetch(rawURL, dir string, seq int) (string, error) {
	if !d.addJob() {
		return "", ErrClosed
	}
	done := make(chan Result, 1)
	select {
	case d.jobs <- job{seq: seq, url: rawURL, dir: dir, done: done}:
	case <-time.After(d.cfg.Timeout):
		d.finish()
		return "", fmt.Errorf("fetch: queue full for %s", rawURL)
	}
	res := <-done
	if res.Err != nil {
		return "", res.Err
	}
	return res.LocalPath, nil
}

// download performs the HTTP GET and writes the body to
// dir/img{seq}{ext}. The returned LocalPath is relative to dir.
func (d *Downloader) download(ctx context.Context, j job) Result {
	res := Result{Seq: j.seq, URL: j.url}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		res.Err = err
		return res
	}
	resp, err := d.cfg.Client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("fetch: %s: unexpected status %s", j.url, resp.Status)
		return res
	}

	name := fmt.Sprintf("img%d%s", j.seq, imageExt(j.url, resp.Header.Get("Content-Type")))
	full := filepath.Join(j.dir, name)
	f, err := os.Create(full)
	if err != nil {
		res.Err = err
		return res
	}
	_, err = io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		res.Err = err
		return res
	}

	d.cfg.Logger.Debug("image downloaded",
		slog.String("url", j.url), slog.String("file", name))
	res.Success = true
	res.LocalPath = name
	return res
}

// imageExt picks a file extension from the URL path, falling back to
// the response content type, then to .img.
func imageExt(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return strings.ToLower(ext)
		}
	}
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
				return exts[0]
			}
		}
	}
	return ".img"
}
