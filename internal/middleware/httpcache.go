package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	APICachePrefix       = "nexus-api-cache:"
	defaultHTTPCacheTTL  = 15 * time.Second
	cacheMaxBodyBytes    = 1 << 20 // bodies past 1 MiB are served but not stored
	staleWhileRevalidate = 60
)

// HTTPCacheOptions is the subset of cache knobs the portal config wires.
type HTTPCacheOptions struct {
	TTL             time.Duration
	EnableCDNHeader bool
	Disable         bool
	SkipPaths       []string
}

// cacheEntry is the stored form of a cacheable GET response. Body
// travels base64-encoded through encoding/json's []byte handling.
type cacheEntry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body"`
}

// bodyRecorder tees the response body so it can be stored after the
// handler ran. Oversized bodies are passed through untouched and
// flagged so they are never cached.
type bodyRecorder struct {
	gin.ResponseWriter
	body      []byte
	limit     int
	truncated bool
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.record(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.record([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *bodyRecorder) record(data []byte) {
	if w.truncated || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > w.limit {
		w.truncated = true
		return
	}
	w.body = append(w.body, data...)
}

// HTTPCache caches anonymous GET responses in Redis for a short TTL.
// Authenticated responses are marked private and never stored.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultHTTPCacheTTL
	}
	return func(c *gin.Context) {
		if opts.Disable || rdb == nil || c.Request.Method != http.MethodGet ||
			skipCachePath(c.Request.URL.Path, opts.SkipPaths) || hasBypassTimestamp(c) {
			c.Next()
			return
		}

		if IsAuthenticated(c) {
			c.Next()
			markPrivate(c.Writer)
			return
		}

		key := APICachePrefix + c.Request.URL.RequestURI()
		if entry, ok := loadCacheEntry(c.Request.Context(), rdb, key); ok {
			writeCacheHeaders(c.Writer, entry.Status, ttl, opts.EnableCDNHeader)
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, limit: cacheMaxBodyBytes}
		c.Writer = rec
		c.Next()

		status := c.Writer.Status()
		if !cacheable(status, c.Writer.Header()) {
			return
		}
		writeCacheHeaders(c.Writer, status, ttl, opts.EnableCDNHeader)
		if rec.truncated || len(rec.body) == 0 {
			return
		}

		raw, err := json.Marshal(cacheEntry{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        rec.body,
		})
		if err != nil {
			return
		}
		_ = rdb.Set(c.Request.Context(), key, raw, ttl).Err()
	}
}

// PurgeHTTPCache deletes every stored response. Used by the admin
// clean_cache endpoint.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, APICachePrefix+"*", 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func loadCacheEntry(ctx context.Context, rdb *redis.Client, key string) (cacheEntry, bool) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return cacheEntry{}, false
	}
	return decodeCacheEntry(raw)
}

func decodeCacheEntry(raw []byte) (cacheEntry, bool) {
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || len(entry.Body) == 0 {
		return cacheEntry{}, false
	}
	if entry.Status <= 0 {
		entry.Status = http.StatusOK
	}
	if entry.ContentType == "" {
		entry.ContentType = "application/json; charset=utf-8"
	}
	return entry, true
}

func skipCachePath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// hasBypassTimestamp detects cache-busting query params clients add to
// force a fresh read.
func hasBypassTimestamp(c *gin.Context) bool {
	query := c.Request.URL.Query()
	for _, key := range []string{"ts", "timestamp", "_t", "t"} {
		if strings.TrimSpace(query.Get(key)) != "" {
			return true
		}
	}
	return false
}

func cacheable(status int, headers http.Header) bool {
	if status != http.StatusOK {
		return false
	}
	cc := strings.ToLower(headers.Get("Cache-Control"))
	return !strings.Contains(cc, "no-cache") &&
		!strings.Contains(cc, "no-store") &&
		!strings.Contains(cc, "private")
}

func markPrivate(w gin.ResponseWriter) {
	if w.Status() != http.StatusOK {
		return
	}
	private := "private, max-age=0, no-cache, no-store, must-revalidate"
	w.Header().Set("cache-control", private)
	w.Header().Set("cdn-cache-control", private)
	w.Header().Set("cloudflare-cdn-cache-control", private)
}

func writeCacheHeaders(w gin.ResponseWriter, status int, ttl time.Duration, cdn bool) {
	if status != http.StatusOK {
		return
	}
	w.Header().Set("x-nexus-cache", "hit")
	if !cdn {
		return
	}
	swr := ", stale-while-revalidate=" + strconv.Itoa(staleWhileRevalidate)
	seconds := strconv.Itoa(int(ttl / time.Second))
	w.Header().Set("cdn-cache-control", "max-age="+seconds+swr)
	w.Header().Set("Cloudflare-CDN-Cache-Control", "max-age="+seconds+swr)
	if w.Header().Get("cache-control") == "" {
		w.Header().Set("cache-control", "s-maxage="+seconds+swr)
	}
}
