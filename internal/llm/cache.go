package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/metrics"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/rs/zerolog/log"
)

// CachedService wraps a Service with a response cache keyed by the request
// contents. Only responses that decode into a valid result are stored.
type CachedService struct {
	inner analysis.Service
	cache storage.VisionCache
	model string
}

// NewCachedService creates a cached service. model is part of the cache key
// so switching models does not serve stale responses.
func NewCachedService(inner analysis.Service, cache storage.VisionCache, model string) *CachedService {
	return &CachedService{inner: inner, cache: cache, model: model}
}

// cacheKey hashes the fields that affect the model output. Each field is
// length prefixed to prevent boundary collisions.
func cacheKey(model string, req *analysis.Request) string {
	h := sha256.New()
	for _, part := range []string{model, req.Prompt, req.MIMEType, req.EncodedImage} {
		binary.Write(h, binary.LittleEndian, int64(len(part)))
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Generate implements analysis.Service with caching.
func (c *CachedService) Generate(ctx context.Context, req *analysis.Request) ([]byte, error) {
	key := cacheKey(c.model, req)

	cached, err := c.cache.GetVisionCache(key)
	if err != nil {
		log.Warn().Err(err).Msg("failed to check vision cache")
	} else if cached != nil {
		if _, err := analysis.Decode(cached); err == nil {
			metrics.VisionCacheTotal.WithLabelValues("hit").Inc()
			log.Debug().Str("key", key[:16]).Msg("vision cache hit")
			return cached, nil
		}
		log.Warn().Str("key", key[:16]).Msg("ignoring undecodable vision cache entry")
	}
	metrics.VisionCacheTotal.WithLabelValues("miss").Inc()

	data, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := analysis.Decode(data); err != nil {
		return data, nil
	}
	if err := c.cache.SetVisionCache(key, data); err != nil {
		log.Warn().Err(err).Msg("failed to cache vision result")
	} else {
		log.Debug().Str("key", key[:16]).Msg("vision result cached")
	}
	return data, nil
}
