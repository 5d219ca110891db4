package docno

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sequenceTTL = 48 * time.Hour

// RedisSequenceGenerator prefijo + AAAAMMDD + secuencia diaria de 6 dígitos (INCR en Redis).
// Único entre procesos que compartan el mismo Redis.
type RedisSequenceGenerator struct {
	rdb redis.UniversalClient
	ns  string
	now func() time.Time
}

// NewRedisSequenceGenerator construye el generador; ns es el namespace de las llaves.
func NewRedisSequenceGenerator(rdb redis.UniversalClient, ns string) *RedisSequenceGenerator {
	if ns == "" {
		ns = "docno"
	}
	return &RedisSequenceGenerator{rdb: rdb, ns: ns, now: time.Now}
}

// Next incrementa el contador del prefijo para el día actual.
func (g *RedisSequenceGenerator) Next(ctx context.Context, prefix string) (string, error) {
	day := g.now().Format(dateLayout)
	key := fmt.Sprintf("%s:%s:%s", g.ns, prefix, day)

	pipe := g.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, sequenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("docno incr %s: %w", key, err)
	}
	return fmt.Sprintf("%s%s%06d", prefix, day, incr.Val()), nil
}

var _ Generator = (*RedisSequenceGenerator)(nil)
