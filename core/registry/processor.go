package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"productmedia.GO/core/cache"
)

// ErrAttributeNotFound is returned when no status is stored for a run serial.
var ErrAttributeNotFound = errors.New("registry: attribute not found")

// Processor stores run scoped import status shared between import stages.
// Values are JSON encoded so both backends behave the same.
type Processor interface {
	SetAttribute(ctx context.Context, serial string, value interface{}) error
	GetAttribute(ctx context.Context, serial string, out interface{}) error
	RemoveAttribute(ctx context.Context, serial string) error
	// Serials lists the runs that currently have a status.
	Serials(ctx context.Context) ([]string, error)
	// Purge removes the status of every run.
	Purge(ctx context.Context) error
}

// MemoryProcessor keeps status in a process local cache.
type MemoryProcessor struct {
	cache *cache.Cache
}

func NewMemoryProcessor(c *cache.Cache) *MemoryProcessor {
	if c == nil {
		c = cache.NewCache()
	}
	return &MemoryProcessor{cache: c}
}

func (p *MemoryProcessor) SetAttribute(_ context.Context, serial string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("registry: encode %s: %w", serial, err)
	}
	p.cache.Set(StatusKey(serial), data, StatusTTL, []string{TagImportStatus})
	return nil
}

func (p *MemoryProcessor) GetAttribute(_ context.Context, serial string, out interface{}) error {
	v, ok := p.cache.Get(StatusKey(serial))
	if !ok {
		return fmt.Errorf("%w: %s", ErrAttributeNotFound, serial)
	}
	return json.Unmarshal(v.([]byte), out)
}

func (p *MemoryProcessor) RemoveAttribute(_ context.Context, serial string) error {
	p.cache.Delete(StatusKey(serial))
	return nil
}

func (p *MemoryProcessor) Serials(_ context.Context) ([]string, error) {
	serials := []string{}
	for _, key := range p.cache.GetKeysByTag(TagImportStatus) {
		// Get drops expired entries
		if _, ok := p.cache.Get(key); ok {
			serials = append(serials, strings.TrimPrefix(key, KeyStatusPrefix))
		}
	}
	sort.Strings(serials)
	return serials, nil
}

func (p *MemoryProcessor) Purge(_ context.Context) error {
	p.cache.DeleteByTag(TagImportStatus)
	return nil
}

// RedisProcessor shares status between processes (e.g. the export and the
// gallery import running on different workers).
type RedisProcessor struct {
	client *redis.Client
}

func NewRedisProcessor(client *redis.Client) *RedisProcessor {
	return &RedisProcessor{client: client}
}

func (p *RedisProcessor) SetAttribute(ctx context.Context, serial string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("registry: encode %s: %w", serial, err)
	}
	return p.client.Set(ctx, StatusKey(serial), data, StatusTTL).Err()
}

func (p *RedisProcessor) GetAttribute(ctx context.Context, serial string, out interface{}) error {
	data, err := p.client.Get(ctx, StatusKey(serial)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrAttributeNotFound, serial)
	}
	if err != nil {
		return fmt.Errorf("registry: get %s: %w", serial, err)
	}
	return json.Unmarshal(data, out)
}

func (p *RedisProcessor) RemoveAttribute(ctx context.Context, serial string) error {
	return p.client.Del(ctx, StatusKey(serial)).Err()
}

func (p *RedisProcessor) Serials(ctx context.Context) ([]string, error) {
	keys, err := p.statusKeys(ctx)
	if err != nil {
		return nil, err
	}
	serials := make([]string, 0, len(keys))
	for _, key := range keys {
		serials = append(serials, strings.TrimPrefix(key, KeyStatusPrefix))
	}
	sort.Strings(serials)
	return serials, nil
}

func (p *RedisProcessor) Purge(ctx context.Context) error {
	keys, err := p.statusKeys(ctx)
	if err != nil || len(keys) == 0 {
		return err
	}
	return p.client.Del(ctx, keys...).Err()
}

func (p *RedisProcessor) statusKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := p.client.Scan(ctx, 0, KeyStatusPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("registry: scan status keys: %w", err)
	}
	return keys, nil
}
