package adapters

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"pnc-buildconfig/internal/store"
)

func TestParserCacheConcurrentAccess(t *testing.T) {
	cache := NewParserCache()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/cfg/%d.ini", i%4)
			cache.Put(path, store.New())
			_, _ = cache.Get(path)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, cache.Len())

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("/cfg/0.ini")
	assert.False(t, ok)
}
