package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Vovarama1992/audiograb/internal/models"
	"github.com/Vovarama1992/audiograb/internal/ports"
	redis "github.com/redis/go-redis/v9"
)

const previewTTL = time.Hour

type RedisPreviewCache struct {
	client *redis.Client
}

// NewRedisPreviewCache degrades to a no-op cache when Redis is unreachable.
func NewRedisPreviewCache(addr string) ports.PreviewCache {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE][OFF] redis not available at %s: %v", addr, err)
		return &RedisPreviewCache{client: nil}
	}

	log.Printf("[CACHE][ON] redis connected at %s", addr)
	return &RedisPreviewCache{client: client}
}

func (c *RedisPreviewCache) Get(ctx context.Context, pageURL string) (*models.VideoInfo, error) {
	if c.client == nil {
		return nil, nil
	}

	val, err := c.client.Get(ctx, previewKey(pageURL)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var info models.VideoInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *RedisPreviewCache) Set(ctx context.Context, pageURL string, info *models.VideoInfo) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, previewKey(pageURL), data, previewTTL).Err()
}

func previewKey(pageURL string) string {
	return fmt.Sprintf("preview:%s", pageURL)
}
