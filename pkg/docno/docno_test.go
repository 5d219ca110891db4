package docno

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestClockGenerator_Format(t *testing.T) {
	g := NewClockGenerator()
	g.now = fixedClock(time.Date(2024, 3, 9, 10, 0, 0, 123_000_000, time.UTC))

	no, err := g.Next(context.Background(), PrefixInbound)
	require.NoError(t, err)
	assert.Len(t, no, len("RK")+8+6)
	assert.True(t, strings.HasPrefix(no, "RK20240309"), "número: %s", no)
}

func TestClockGenerator_NeverRepeatsInProcess(t *testing.T) {
	g := NewClockGenerator()
	// reloj congelado: el contador debe avanzar igual
	g.now = fixedClock(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC))

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no, _ := g.Next(context.Background(), PrefixOutbound)
			mu.Lock()
			seen[no] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50, "no debe haber números repetidos")
}

func TestRedisSequenceGenerator_DailySequence(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	g := NewRedisSequenceGenerator(rdb, "test")
	g.now = fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := g.Next(ctx, PrefixStocktaking)
	require.NoError(t, err)
	second, err := g.Next(ctx, PrefixStocktaking)
	require.NoError(t, err)
	other, err := g.Next(ctx, PrefixPurchase)
	require.NoError(t, err)

	assert.Equal(t, "PD20240102000001", first)
	assert.Equal(t, "PD20240102000002", second)
	assert.Equal(t, "CG20240102000001", other, "cada prefijo lleva su propia secuencia")

	ttl := mr.TTL("test:PD:20240102")
	assert.Equal(t, 48*time.Hour, ttl)
}

func TestRedisSequenceGenerator_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	_, err := NewRedisSequenceGenerator(rdb, "").Next(context.Background(), PrefixInbound)
	assert.Error(t, err)
}

func TestDerived(t *testing.T) {
	assert.Equal(t, "PD20240102000001-RK", Derived("PD20240102000001", PrefixInbound))
}
