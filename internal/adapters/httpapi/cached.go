// internal/adapters/httpapi/cached.go
package httpapi

import (
	"context"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/cache"
	"passivemap/internal/platform/logx"
)

// cachedAggregator memoriza resultados correctos por target normalizado.
// No se cachean errores ni documentos en los que fallaron todas las fuentes.
type cachedAggregator struct {
	next   Aggregator
	cache  *cache.Memory[*domain.AggregateResult]
	ttl    time.Duration
	logger logx.Logger
}

func (c *cachedAggregator) Aggregate(ctx context.Context, raw string) (*domain.AggregateResult, error) {
	target, err := domain.NewTarget(raw)
	if err != nil {
		return c.next.Aggregate(ctx, raw)
	}

	if result, ok := c.cache.Get(target.Root); ok {
		c.logger.Debug("cache hit", "target", target.Root)
		return result, nil
	}

	result, err := c.next.Aggregate(ctx, raw)
	if err != nil {
		return nil, err
	}
	if allFailed(result) {
		c.logger.Debug("cache skipped, every source failed", "target", target.Root)
		return result, nil
	}
	c.cache.Set(target.Root, result)
	return result, nil
}

// purgeLoop quita periódicamente las entradas caducadas hasta que ctx se cancela.
func (c *cachedAggregator) purgeLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.cache.Purge(); n > 0 {
				c.logger.Debug("cache purged", "removed", n, "remaining", c.cache.Len())
			}
		}
	}
}

func allFailed(result *domain.AggregateResult) bool {
	return len(result.Sources) > 0 && len(result.FailedSources()) == len(result.Sources)
}
