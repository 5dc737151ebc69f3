package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/showroom/vehicle-catalog/internal/api/metrics"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

const defaultCacheTTL = 10 * time.Minute

// VehicleCache caches single vehicle records. Records never change after
// import, so entries only expire to bound memory.
// Key format: vehicle:<id>
type VehicleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVehicleCache wraps client. A non-positive ttl uses defaultCacheTTL.
func NewVehicleCache(client *redis.Client, ttl time.Duration) *VehicleCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &VehicleCache{client: client, ttl: ttl}
}

// Get reports false on a miss.
func (c *VehicleCache) Get(ctx context.Context, id int) (*domain.Vehicle, bool, error) {
	raw, err := c.client.Get(ctx, vehicleKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.VehicleCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.VehicleCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("vehicle cache get: %w", err)
	}

	var v domain.Vehicle
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.VehicleCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("vehicle cache decode: %w", err)
	}
	metrics.VehicleCacheTotal.WithLabelValues("hit").Inc()
	return &v, true, nil
}

func (c *VehicleCache) Set(ctx context.Context, v *domain.Vehicle) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("vehicle cache encode: %w", err)
	}
	return c.client.Set(ctx, vehicleKey(v.ID), data, c.ttl).Err()
}

func vehicleKey(id int) string {
	return "vehicle:" + strconv.Itoa(id)
}
