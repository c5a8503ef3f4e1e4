package fixture

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache used by the default transformer.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *recordConfig) {
		cfg.programCache = cache
	}
}

type lruProgramCache struct {
	cache *lru.Cache
}

// NewLRUProgramCache returns a ProgramCache bounded to size entries.
func NewLRUProgramCache(size int) (ProgramCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("fixture: program cache: %w", err)
	}
	return &lruProgramCache{cache: cache}, nil
}

func (c *lruProgramCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *lruProgramCache) Set(key string, value any) {
	c.cache.Add(key, value)
}

// cachedProgram returns the program stored for engine and expression,
// compiling and storing it on a miss.
func cachedProgram[P any](cache ProgramCache, engine, expression string, compile func(string) (P, error)) (P, error) {
	key := engine + ":" + expression
	if cache != nil {
		if hit, ok := cache.Get(key); ok {
			if program, ok := hit.(P); ok {
				return program, nil
			}
		}
	}
	program, err := compile(expression)
	if err != nil {
		return program, err
	}
	if cache != nil {
		cache.Set(key, program)
	}
	return program, nil
}
