// Package feed loads the vlog feed: a JSON array of journal entries
// fetched over HTTP and rendered as an HTML fragment.
//
// [Loader.Load] returns a channel that delivers exactly one [Result]. A
// network or decode failure is reported in Result.Err, and [Render] turns
// such a result into the fallback message instead of entries.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/httputil"
	"github.com/matzehuels/glyphclock/pkg/observability"
)

// FallbackMessage is shown when the feed cannot be loaded.
const FallbackMessage = "Unable to load vlog entries right now."

// namespace scopes entry IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("glyphclock/vlog"))

// Entry is one journal entry.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Result is the outcome of one load.
type Result struct {
	Entries []Entry `json:"entries"`
	Err     error   `json:"-"`
	Cached  bool    `json:"cached"`
}

// Loader fetches the feed.
type Loader struct {
	url    string
	client *http.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
	retry  func(ctx context.Context, fn func() error) error
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithCache caches raw responses for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache, l.ttl = c, ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRetry replaces httputil.RetryWithBackoff.
func WithRetry(fn func(ctx context.Context, fn func() error) error) Option {
	return func(l *Loader) {
		if fn != nil {
			l.retry = fn
		}
	}
}

// NewLoader creates a loader for url.
func NewLoader(url string, opts ...Option) *Loader {
	l := &Loader{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache.NewNullCache(),
		ttl:    cache.TTLFeed,
		logger: log.Default(),
		retry:  httputil.RetryWithBackoff,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithPrefix("feed")
	return l
}

// URL returns the feed URL.
func (l *Loader) URL() string { return l.url }

// Load fetches the feed in the background. The channel receives one
// Result and is then closed.
func (l *Loader) Load(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- l.LoadSync(ctx)
	}()
	return ch
}

// LoadSync fetches the feed and blocks until done.
func (l *Loader) LoadSync(ctx context.Context) Result {
	if err := errors.ValidateURL(l.url); err != nil {
		return Result{Err: err}
	}

	key := cache.FeedKey(l.url)
	if body, hit, err := l.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, cache.PrefixFeed)
		if entries, err := Decode(body); err == nil {
			return Result{Entries: entries, Cached: true}
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.PrefixFeed)

	var body []byte
	err := l.retry(ctx, func() error {
		var err error
		body, err = httputil.Fetch(ctx, l.client, l.url)
		return err
	})
	if err != nil {
		l.logger.Warn("feed fetch failed", "url", l.url, "err", err)
		return Result{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", l.url)}
	}

	entries, err := Decode(body)
	if err != nil {
		l.logger.Warn("feed decode failed", "url", l.url, "err", err)
		return Result{Err: err}
	}
	if err := l.cache.Set(ctx, key, body, l.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, cache.PrefixFeed, len(body))
	}
	l.logger.Debug("feed loaded", "entries", len(entries))
	return Result{Entries: entries}
}

// Decode parses a feed document and assigns entry IDs.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode feed")
	}
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = EntryID(entries[i])
		}
	}
	return entries, nil
}

// EntryID returns a stable ID for an entry derived from its date and title.
func EntryID(e Entry) string {
	return uuid.NewSHA1(namespace, []byte(e.Date+"\x00"+e.Title)).String()
}
