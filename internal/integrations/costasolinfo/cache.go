package costasolinfo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache короткоживущий кэш ответов каталога поверх Redis
// Каждое значение пишется дважды: свежая копия с коротким TTL и
// «протухшая» копия с длинным - она отдается, когда каталог недоступен
type Cache struct {
	rdb      *redis.Client
	freshTTL time.Duration
	staleTTL time.Duration
}

// NewCache создает кэш каталога. rdb = nil отключает кэширование
func NewCache(rdb *redis.Client, freshTTL, staleTTL time.Duration) *Cache {
	return &Cache{rdb: rdb, freshTTL: freshTTL, staleTTL: staleTTL}
}

// Get возвращает свежее закэшированное значение
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// GetStale возвращает протухшую копию (fallback при недоступном каталоге)
func (c *Cache) GetStale(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key+"::stale").Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set сохраняет значение в обе копии
// Ошибки Redis не фатальны: кэш - оптимизация, не источник истины
func (c *Cache) Set(ctx context.Context, key, val string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key, val, c.freshTTL)
	c.rdb.Set(ctx, key+"::stale", val, c.staleTTL)
}

// cacheKey собирает детерминированный ключ из пути и параметров запроса
func cacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return "csi::" + path
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s&", k, params.Get(k))
	}
	return "csi::" + path + "::" + strings.TrimSuffix(sb.String(), "&")
}
