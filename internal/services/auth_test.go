package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"labstock/pkg/config"
	apperrors "labstock/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCacheRepo хранит ключи в памяти; getErr имитирует недоступный Redis.
type fakeCacheRepo struct {
	store  map[string]string
	getErr error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.store[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.store[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCacheRepo) Incr(_ context.Context, key string) (int64, error) {
	f.store[key] = "1"
	return 1, nil
}

func (f *fakeCacheRepo) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

func newAuthServiceForTest(cache *fakeCacheRepo) AuthServiceInterface {
	return NewAuthService(nil, cache, nil, zap.NewNop(), &config.AuthConfig{
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
	})
}

func TestAuthService_IsTokenRevoked_MissingKey(t *testing.T) {
	svc := newAuthServiceForTest(newFakeCacheRepo())

	revoked, err := svc.IsTokenRevoked(context.Background(), "some.access.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_IsTokenRevoked_AfterRevocation(t *testing.T) {
	cache := newFakeCacheRepo()
	svc := newAuthServiceForTest(cache)

	token := "some.access.token"
	cache.store[denylistKey(token)] = "revoked"

	revoked, err := svc.IsTokenRevoked(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)
}

// При недоступном кеше проверка отзыва возвращает ошибку, а не
// «не отозван»: разлогиненный токен не должен проходить молча.
func TestAuthService_IsTokenRevoked_CacheErrorPropagates(t *testing.T) {
	cache := newFakeCacheRepo()
	cache.getErr = errors.New("redis: connection refused")
	svc := newAuthServiceForTest(cache)

	revoked, err := svc.IsTokenRevoked(context.Background(), "some.access.token")
	require.Error(t, err)
	assert.False(t, revoked)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
