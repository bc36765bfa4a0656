package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/JustJay7/precedent/internal/legal"
)

// Cache stores analysis results. Every Get returns a freshly decoded value, so
// callers never share a result.
type Cache interface {
	Get(key string) (*legal.AnalysisResult, bool)
	Set(key string, value *legal.AnalysisResult) error
	Delete(key string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

// ResultCache is a size-bounded TTL cache on top of go-cache.
type ResultCache struct {
	cache   *cache.Cache
	mu      sync.RWMutex
	stats   CacheStats
	maxSize int
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &ResultCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

func (c *ResultCache) Get(key string) (*legal.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		if payload, ok := data.([]byte); ok {
			var result legal.AnalysisResult
			if err := json.Unmarshal(payload, &result); err == nil {
				c.stats.Hits++
				return &result, true
			}
		}
	}

	c.stats.Misses++
	return nil, false
}

// Set refuses failed results so a transient provider error is not replayed.
func (c *ResultCache) Set(key string, value *legal.AnalysisResult) error {
	if value == nil || value.Failed() {
		return fmt.Errorf("refusing to cache failed result for %q", key)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode result for %q: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(key, payload, cache.DefaultExpiration)
	return nil
}

func (c *ResultCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{}
}

func (c *ResultCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Size = c.cache.ItemCount()
	return stats
}

// removeOldest evicts the entry closest to expiry, which is the one inserted
// first since every entry shares the same TTL.
func (c *ResultCache) removeOldest() {
	var oldestKey string
	var oldestExpiry int64

	for key, item := range c.cache.Items() {
		if oldestKey == "" || item.Expiration < oldestExpiry {
			oldestKey = key
			oldestExpiry = item.Expiration
		}
	}

	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}

// GenerateCacheKey builds the key for a query. Additional info does not
// influence the analysis and is left out.
func GenerateCacheKey(crimeCode, jurisdiction string) string {
	return fmt.Sprintf("analysis:%q:%q", crimeCode, jurisdiction)
}
