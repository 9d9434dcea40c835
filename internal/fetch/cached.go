package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched job posting is reused.
const DefaultCacheTTL = 15 * time.Minute

// DefaultCacheEntries bounds the number of cached postings.
const DefaultCacheEntries = 256

type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

// CachedFetcher wraps JobDescription with an in-memory, TTL-bounded cache so
// repeated scoring against the same posting does not refetch it.
type CachedFetcher struct {
	options    *Options
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	fetch      func(ctx context.Context, url string, opts *Options) (*Result, error)

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedFetcher creates a new cached fetcher. A non-positive ttl uses DefaultCacheTTL.
func NewCachedFetcher(options *Options, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		options:    options,
		ttl:        ttl,
		maxEntries: DefaultCacheEntries,
		now:        time.Now,
		fetch:      JobDescription,
		entries:    make(map[string]cacheEntry),
	}
}

// Fetch returns the job posting at url, from cache when still fresh.
// Failed fetches are not cached.
func (f *CachedFetcher) Fetch(ctx context.Context, url string) (*Result, bool, error) {
	if result, ok := f.lookup(url); ok {
		return result, true, nil
	}

	result, err := f.fetch(ctx, url, f.options)
	if err != nil {
		return nil, false, err
	}

	f.store(url, result)
	return result, false, nil
}

// Invalidate drops url from the cache.
func (f *CachedFetcher) Invalidate(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, url)
}

func (f *CachedFetcher) lookup(url string) (*Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[url]
	if !ok {
		return nil, false
	}
	if f.now().After(entry.expiresAt) {
		delete(f.entries, url)
		return nil, false
	}
	return entry.result, true
}

func (f *CachedFetcher) store(url string, result *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if len(f.entries) >= f.maxEntries {
		for key, entry := range f.entries {
			if now.After(entry.expiresAt) {
				delete(f.entries, key)
			}
		}
	}
	if len(f.entries) >= f.maxEntries {
		// evict the entry closest to expiry
		var oldest string
		for key, entry := range f.entries {
			if oldest == "" || entry.expiresAt.Before(f.entries[oldest].expiresAt) {
				oldest = key
			}
		}
		delete(f.entries, oldest)
	}
	f.entries[url] = cacheEntry{result: result, expiresAt: now.Add(f.ttl)}
}
