package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type example struct {
	ID   int
	Name string
}

func TestInMemory_GetExistingValue(t *testing.T) {
	c := NewInMemory[string, example]("test", DefaultExpiration, DefaultCleanupInterval)
	want := example{ID: 1, Name: "apple"}
	c.Set(context.Background(), "ex:1", want, DefaultExpiration)

	got, ok := c.Get(context.Background(), "ex:1")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemory_GetMissing(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	got, ok := c.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_GetWrongType(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	c.cache.Set("food", 123, DefaultExpiration)

	got, ok := c.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_Expires(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set(context.Background(), "food", "apple", time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(context.Background(), "food")
	require.False(t, ok)
}

func TestInMemory_AddOnlyOnce(t *testing.T) {
	c := NewInMemory[string, bool]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	require.True(t, c.Add(ctx, "k", true, DefaultExpiration))
	require.False(t, c.Add(ctx, "k", true, DefaultExpiration))

	c.Delete(ctx, "k")
	require.True(t, c.Add(ctx, "k", true, DefaultExpiration))
}

func TestInMemory_Flush(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	c.Set(ctx, "a", "1", DefaultExpiration)
	c.Set(ctx, "b", "2", DefaultExpiration)
	require.Equal(t, 2, c.Len())

	c.Flush(ctx)
	require.Equal(t, 0, c.Len())
}

func TestInMemory_ConcurrentAdd(t *testing.T) {
	c := NewInMemory[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if c.Add(ctx, "shared", id, DefaultExpiration) {
				mu.Lock()
				added++
				mu.Unlock()
			}
			c.Set(ctx, fmt.Sprintf("key-%d", id), id, DefaultExpiration)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, added)
	require.Equal(t, 21, c.Len())
}
