package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/infrastructure/cache"
)

func TestStoreConfigGet_FallsBackWhenPrimaryDown(t *testing.T) {
	primary := &fakeStoreConfigRepo{err: errors.New("connection refused")}
	fallback := &fakeStoreConfigRepo{sc: &domain.StoreConfig{Name: "Tie Style (static)"}}
	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	uc := NewStoreConfigUsecase(primary, fallback, memCache, testConfig())

	sc, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tie Style (static)", sc.Name)

	// The fallback copy is cached, so a second read does not touch the
	// repositories again.
	fallback.err = errors.New("file gone")
	sc, err = uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tie Style (static)", sc.Name)
}

func TestStoreConfigGet_BothUnavailable(t *testing.T) {
	primary := &fakeStoreConfigRepo{err: errors.New("connection refused")}
	fallback := &fakeStoreConfigRepo{err: errors.New("no such file")}
	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	uc := NewStoreConfigUsecase(primary, fallback, memCache, testConfig())

	_, err := uc.Get(context.Background())
	assert.ErrorContains(t, err, "store config unavailable")
}

func TestStoreConfigUpdate(t *testing.T) {
	uc := newTestConfigUC(testStoreConfig())

	err := uc.Update(context.Background(), &domain.StoreConfig{})
	assert.ErrorContains(t, err, "name is required")

	updated := testStoreConfig()
	updated.Description = "Handmade ties"
	require.NoError(t, uc.Update(context.Background(), updated))
	assert.False(t, updated.UpdatedAt.IsZero())

	// The cache is invalidated: the next read sees the new document.
	sc, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Handmade ties", sc.Description)
}

func TestUpdateDeliveryRates(t *testing.T) {
	uc := newTestConfigUC(testStoreConfig())

	_, err := uc.UpdateDeliveryRates(context.Background(), []domain.DeliveryRate{{State: "", ChargeINR: 50}})
	assert.ErrorContains(t, err, "missing state")

	_, err = uc.UpdateDeliveryRates(context.Background(), []domain.DeliveryRate{{State: "Goa", ChargeINR: -1}})
	assert.ErrorContains(t, err, "negative")

	sc, err := uc.UpdateDeliveryRates(context.Background(), []domain.DeliveryRate{
		{State: "Goa", ChargeINR: 80},
	})
	require.NoError(t, err)
	require.Len(t, sc.Delivery.Rates, 1)
	assert.Equal(t, 80.0, sc.Delivery.Rates[0].ChargeINR)

	rate := sc.RateForState("goa")
	require.NotNil(t, rate)
	assert.Equal(t, 80.0, rate.ChargeINR)
}
