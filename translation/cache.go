package translation

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cache memoizes translations keyed by (source language, text); each entry
// maps target language -> translated text. It is bounded (LRU) and shared
// across concurrent requests, so entry mutation is guarded: two requests
// translating the same text may briefly both call the provider (idempotent,
// same result) but can never corrupt the structure.
type cache struct {
	mu  sync.Mutex
	lru *lru.Cache[cacheKey, map[string]string]
}

type cacheKey struct {
	sourceLang string
	text       string
}

func newCache(size int) (*cache, error) {
	inner, err := lru.New[cacheKey, map[string]string](size)
	if err != nil {
		return nil, err
	}
	return &cache{lru: inner}, nil
}

func (c *cache) get(text, sourceLang, targetLang string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.lru.Get(cacheKey{sourceLang: sourceLang, text: text})
	if !ok {
		return "", false
	}
	translated, ok := entry[targetLang]
	return translated, ok
}

func (c *cache) put(text, sourceLang, targetLang, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{sourceLang: sourceLang, text: text}
	entry, ok := c.lru.Get(key)
	if !ok {
		entry = make(map[string]string, 2)
	}
	entry[targetLang] = translated
	c.lru.Add(key, entry)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
