package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beac0n5/OFFAT/internal/options"
	"github.com/beac0n5/OFFAT/loader"
)

// contentName stands in for a path in documents decoded from inline content.
const contentName = "<content>"

// specInput represents the two ways a specification can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a .json or .yaml specification file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline specification content"`
	Format  string `json:"format,omitempty"  jsonschema:"Format of inline content: json or yaml. Detected from the first character when omitted"`
}

// cacheEntry holds a loaded document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *loader.Document
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore provides a session-scoped cache for loaded documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash of format and content.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *loader.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.doc
	}
	return nil
}

// putWithTTL stores a document, evicting the least recently used entry if at
// capacity.
func (c *specCacheStore) putWithTTL(key string, doc *loader.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// Only the first call spawns a sweeper. It stops when ctx is cancelled.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key for s, or "" when s cannot be cached.
func (s specInput) cacheKey(format string) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(format + "\x00" + s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// contentFormat returns the explicit format, or guesses json for content that
// opens with a brace or bracket.
func (s specInput) contentFormat() string {
	if s.Format != "" {
		return s.Format
	}
	trimmed := strings.TrimSpace(s.Content)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return loader.FormatJSON
	}
	return loader.FormatYAML
}

// resolve loads the document from whichever input was provided. Recoverable
// load failures come back as a Document with Err set; only successful loads are
// cached.
func (s specInput) resolve() (*loader.Document, error) {
	const msg = "exactly one of file or content must be provided"
	if err := options.ValidateSingleInputSource(msg, msg, s.File != "", s.Content != ""); err != nil {
		return nil, err
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OFFAT_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	format := ""
	if s.Content != "" {
		format = s.contentFormat()
	}

	var key string
	ttl := cfg.CacheFileTTL
	if cfg.CacheEnabled {
		key = s.cacheKey(format)
		if s.Content != "" {
			ttl = cfg.CacheContentTTL
		}
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	l, err := loader.New(loader.WithMaxFileSize(cfg.MaxFileSize))
	if err != nil {
		return nil, err
	}

	var doc *loader.Document
	if s.File != "" {
		doc, err = l.Load(s.File)
	} else {
		doc, err = l.Decode(contentName, format, []byte(s.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" && !doc.Failed() {
		specCache.putWithTTL(key, doc, ttl)
	}
	return doc, nil
}
