package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

// DefaultListTTL bounds how stale a cached key listing may be. Listings are
// advisory (human-in-the-loop review), so a short staleness window is
// acceptable.
const DefaultListTTL = 60 * time.Second

// SkippedKey records an object that could not be loaded and why.
type SkippedKey struct {
	Key    string
	Reason string
}

// LoadResult is the outcome of LoadEntries. Skipped keys are reported rather
// than silently dropped so callers can distinguish "zero matches" from
// "N unreadable objects".
type LoadResult struct {
	Entries []entities.Entry
	Skipped []SkippedKey
}

type cachedListing struct {
	keys    []string
	fetched time.Time
}

// EntryRepository enumerates and loads entries from the blob store with
// date and keyword filtering. Listings are cached per bucket/prefix with a
// bounded TTL.
type EntryRepository struct {
	store ports.BlobStore
	log   *zap.Logger
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cachedListing

	// now can be swapped in tests to control cache expiry.
	now func() time.Time
}

// NewEntryRepository creates a repository over the given store. A zero ttl
// means DefaultListTTL.
func NewEntryRepository(store ports.BlobStore, log *zap.Logger, ttl time.Duration) *EntryRepository {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	return &EntryRepository{
		store: store,
		log:   log,
		ttl:   ttl,
		cache: make(map[string]cachedListing),
		now:   time.Now,
	}
}

// ListKeys returns all .json keys under <prefix>/ in descending lexical
// order, which the zero-padded date partitions make newest-partition-first.
// Results are served from cache within the TTL. A store failure is returned
// as an error; callers are expected to degrade to an empty listing and
// surface a warning rather than abort.
func (r *EntryRepository) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	if bucket == "" || prefix == "" {
		return nil, nil
	}

	cacheKey := bucket + "/" + prefix
	r.mu.Lock()
	if c, ok := r.cache[cacheKey]; ok && r.now().Sub(c.fetched) < r.ttl {
		keys := c.keys
		r.mu.Unlock()
		return keys, nil
	}
	r.mu.Unlock()

	all, err := r.store.List(ctx, bucket, prefix+"/")
	if err != nil {
		r.log.Warn("listing keys failed",
			zap.String("bucket", bucket),
			zap.String("prefix", prefix),
			zap.Error(err))
		return nil, fmt.Errorf("listing %s/%s: %w", bucket, prefix, err)
	}

	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasSuffix(k, JSONSuffix) {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	r.mu.Lock()
	r.cache[cacheKey] = cachedListing{keys: keys, fetched: r.now()}
	r.mu.Unlock()

	return keys, nil
}

// InvalidateListing drops the cached listing for a bucket/prefix, used after
// writes or deletes when the caller wants the next listing to be fresh.
func (r *EntryRepository) InvalidateListing(bucket, prefix string) {
	r.mu.Lock()
	delete(r.cache, bucket+"/"+prefix)
	r.mu.Unlock()
}

// FilterByDate keeps exactly the keys whose partition date lies in
// [start, end] inclusive. Dates are compared as fixed-width YYYY-MM-DD
// strings; an empty bound leaves that side unbounded. Keys without a
// parseable date are dropped.
func FilterByDate(keys []string, start, end string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		d := ExtractDate(k)
		if d == "" {
			continue
		}
		if start != "" && d < start {
			continue
		}
		if end != "" && d > end {
			continue
		}
		out = append(out, k)
	}
	return out
}

// LoadEntries fetches and parses each key. An object that is missing,
// unreadable, or not valid JSON is skipped and recorded; the result may hold
// fewer entries than keys. Loaded entries are tagged with their origin.
func (r *EntryRepository) LoadEntries(ctx context.Context, bucket string, keys []string) (*LoadResult, error) {
	result := &LoadResult{}
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := r.store.Get(ctx, bucket, k)
		if err != nil {
			reason := "read failed"
			if errors.Is(err, ports.ErrNotFound) {
				reason = "missing"
			}
			r.log.Debug("skipping unreadable entry", zap.String("key", k), zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedKey{Key: k, Reason: reason})
			continue
		}

		var entry entities.Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			result.Skipped = append(result.Skipped, SkippedKey{Key: k, Reason: "invalid JSON"})
			continue
		}

		entry.Origin = entities.Origin{Bucket: bucket, Key: k}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// FilterByKeyword keeps the entries matching the keyword (case-insensitive
// substring over prompt, AI response, approved response, and review notes).
// An empty keyword returns the input unchanged.
func FilterByKeyword(entries []entities.Entry, keyword string) []entities.Entry {
	if strings.TrimSpace(keyword) == "" {
		return entries
	}
	out := make([]entities.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ContainsKeyword(keyword) {
			out = append(out, e)
		}
	}
	return out
}
