package horoscopecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

const clearBatch = 256

// ValkeyCache stores bundles as JSON strings with SET EX. Every written key
// is also added to an index set so Clear can find them without SCAN. The
// index expires with the newest entry and misses prune their own name.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "astro"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get implements horoscope.Cache.
func (c *ValkeyCache) Get(ctx context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(c.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			c.forget(ctx, key)
			return horoscope.Content{}, false, nil
		}
		return horoscope.Content{}, false, err
	}
	var content horoscope.Content
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return horoscope.Content{}, false, fmt.Errorf("decode cached horoscope: %w", err)
	}
	return content, true, nil
}

// Save writes content with ttl and records the key in the index set.
func (c *ValkeyCache) Save(ctx context.Context, content horoscope.Content, ttl time.Duration) error {
	payload, err := json.Marshal(content)
	if err != nil {
		return err
	}
	name := c.entryKey(content.Key())
	ttl = entryTTL(ttl)
	builder := c.client.B().Set().Key(name).Value(string(payload))
	var set, keep valkey.Completed
	if ttl > 0 {
		set = builder.Ex(ttl).Build()
		keep = c.client.B().Expire().Key(c.indexKey()).Seconds(int64(ttl / time.Second)).Build()
	} else {
		set = builder.Build()
		keep = c.client.B().Persist().Key(c.indexKey()).Build()
	}
	sadd := c.client.B().Sadd().Key(c.indexKey()).Member(name).Build()
	for _, resp := range c.client.DoMulti(ctx, set, sadd, keep) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Clear deletes every indexed entry and the index itself. Entries that
// already expired are not counted.
func (c *ValkeyCache) Clear(ctx context.Context) (int, error) {
	members, err := c.client.Do(ctx, c.client.B().Smembers().Key(c.indexKey()).Build()).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for start := 0; start < len(members); start += clearBatch {
		end := min(start+clearBatch, len(members))
		n, err := c.client.Do(ctx, c.client.B().Del().Key(members[start:end]...).Build()).AsInt64()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	if err := c.client.Do(ctx, c.client.B().Del().Key(c.indexKey()).Build()).Error(); err != nil {
		return removed, err
	}
	return removed, nil
}

// forget drops an expired entry from the index. Failures only leave a stale
// name for Clear to skip.
func (c *ValkeyCache) forget(ctx context.Context, key horoscope.Key) {
	_ = c.client.Do(ctx, c.client.B().Srem().Key(c.indexKey()).Member(c.entryKey(key)).Build()).Error()
}

// entryTTL rounds positive TTLs up to whole seconds, the resolution of SET EX
// and EXPIRE. Zero or negative means no expiry.
func entryTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return (ttl + time.Second - 1).Truncate(time.Second)
}

func (c *ValkeyCache) entryKey(key horoscope.Key) string {
	return fmt.Sprintf("%s:%s", c.prefix, key.CacheKey())
}

func (c *ValkeyCache) indexKey() string {
	return fmt.Sprintf("%s:horoscope_index", c.prefix)
}

var _ horoscope.Cache = (*ValkeyCache)(nil)
