package mycache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/mytime"
)

type product struct {
	SKU   string
	Price int64
}

func TestInMemoryCache(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := mytime.ExampleTime
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	cache := NewInMemoryCache(nower)

	t.Run("Miss", func(t *testing.T) {
		found, err := cache.Get(c, "t1", "products:all", &product{})
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Hit within ttl", func(t *testing.T) {
		// given
		_ = cache.Set(c, "t1", "product:p1", product{SKU: "TS-1", Price: 1999}, time.Minute)

		// when
		p := product{}
		found, err := cache.Get(c, "t1", "product:p1", &p)

		// then
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, product{SKU: "TS-1", Price: 1999}, p)
	})

	t.Run("Tenants are isolated", func(t *testing.T) {
		found, _ := cache.Get(c, "t2", "product:p1", &product{})
		assert.False(t, found)
	})

	t.Run("Expired after ttl", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		found, _ := cache.Get(c, "t1", "product:p1", &product{})
		assert.False(t, found)
	})

	t.Run("Invalidate prefix", func(t *testing.T) {
		// given
		_ = cache.Set(c, "t1", "product:p1", product{SKU: "TS-1"}, 0)
		_ = cache.Set(c, "t1", "product:p2", product{SKU: "TS-2"}, 0)
		_ = cache.Set(c, "t1", "shipping:us", product{}, 0)

		// when
		err := cache.InvalidatePrefix(c, "t1", "product:")

		// then
		assert.NoError(t, err)
		found, _ := cache.Get(c, "t1", "product:p2", &product{})
		assert.False(t, found)
		found, _ = cache.Get(c, "t1", "shipping:us", &product{})
		assert.True(t, found)
	})
}

func TestGetOrLoad(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	cache := NewInMemoryCache(nower)

	loads := 0
	load := func() (product, error) {
		loads++
		return product{SKU: "TS-1"}, nil
	}

	t.Run("Loads once", func(t *testing.T) {
		p1, err := GetOrLoad(c, cache, "t1", "product:p1", DefaultTTL, load)
		assert.NoError(t, err)
		p2, err := GetOrLoad(c, cache, "t1", "product:p1", DefaultTTL, load)
		assert.NoError(t, err)

		assert.Equal(t, p1, p2)
		assert.Equal(t, 1, loads)
	})

	t.Run("Load error is not cached", func(t *testing.T) {
		_, err := GetOrLoad(c, cache, "t1", "product:p9", DefaultTTL, func() (product, error) {
			return product{}, fmt.Errorf("boom")
		})
		assert.Error(t, err)
		found, _ := cache.Get(c, "t1", "product:p9", &product{})
		assert.False(t, found)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "agx:tenant-1:products:list", Key("tenant-1", "products:list"))
}
