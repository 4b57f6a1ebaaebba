package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "RiskDesk/pkg/cache"
)

// ServiceCache adapts a pkg/cache Service to the BytesCache API. Payloads
// are stored as strings so every backend round-trips them unchanged.
type ServiceCache struct {
	svc     pkgcache.Service
	timeout time.Duration
}

func NewServiceCache(svc pkgcache.Service) *ServiceCache {
	return &ServiceCache{svc: svc, timeout: 2 * time.Second}
}

func (s *ServiceCache) GetBytes(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var payload string
	err := s.svc.Get(ctx, key, &payload)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}

func (s *ServiceCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.svc.Set(ctx, key, string(value), ttl)
}
