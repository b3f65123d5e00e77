package directoryRepo

import (
	"context"
	"encoding/json"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedDirectory is a Redis read-through cache in front of another Directory.
// Cache errors fall through to the backing directory. Entries may be stale
// for up to ttl, so gating reads go through Fresh.
type CachedDirectory struct {
	next   Directory
	client *redis.Client
	ttl    time.Duration
}

func NewCachedDirectory(next Directory, client *redis.Client, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{next: next, client: client, ttl: ttl}
}

// Uncached returns the backing directory.
func (d *CachedDirectory) Uncached() Directory {
	return d.next
}

func (d *CachedDirectory) FindLaborByID(ctx context.Context, id string) (*models.Labor, error) {
	key := utils.DirectoryCachePrefix + "labor:" + id
	var labor models.Labor
	if d.get(ctx, key, &labor) {
		return &labor, nil
	}
	found, err := d.next.FindLaborByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.set(ctx, key, found)
	return found, nil
}

func (d *CachedDirectory) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	key := utils.DirectoryCachePrefix + "customer:" + id
	var customer models.Customer
	if d.get(ctx, key, &customer) {
		return &customer, nil
	}
	found, err := d.next.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.set(ctx, key, found)
	return found, nil
}

func (d *CachedDirectory) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := d.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("directory cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (d *CachedDirectory) set(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.client.Set(ctx, key, raw, d.ttl).Err(); err != nil {
		utils.GetLogger().Debug("directory cache write failed", zap.String("key", key), zap.Error(err))
	}
}
