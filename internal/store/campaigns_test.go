package store

import (
	"testing"
	"time"

	"bidwise/internal/model"
	"bidwise/internal/sim"

	"github.com/stretchr/testify/require"
)

func validParams() model.StrategyParams {
	return model.StrategyParams{
		Strategy:         model.StrategyBaseline,
		BaseBid:          10,
		ConversionWeight: 5,
		DeviceTargeting:  model.TargetAll,
	}
}

func TestCampaignsCreateAndGet(t *testing.T) {
	require := require.New(t)

	s := NewCampaigns()
	c, err := s.Create("Summer Sale", 5000, validParams())
	require.NoError(err)
	require.NotEmpty(c.ID)
	require.Equal("active", c.Status)
	require.False(c.CreatedAt.IsZero())

	got, ok := s.Get(c.ID)
	require.True(ok)
	require.Equal(c, got)

	_, ok = s.Get("missing")
	require.False(ok)
}

func TestCampaignsCreateRejectsInvalid(t *testing.T) {
	require := require.New(t)

	s := NewCampaigns()

	_, err := s.Create("", 5000, validParams())
	require.Error(err)

	_, err = s.Create("No Budget", 0, validParams())
	require.Error(err)

	bad := validParams()
	bad.ConversionWeight = 50
	_, err = s.Create("Bad Weight", 5000, bad)
	require.Error(err)

	require.Empty(s.List())
}

func TestCampaignsListOrderedByCreation(t *testing.T) {
	require := require.New(t)

	s := NewCampaigns()
	first, err := s.Create("first", 100, validParams())
	require.NoError(err)
	second, err := s.Create("second", 100, validParams())
	require.NoError(err)

	list := s.List()
	require.Len(list, 2)
	require.Equal(first.ID, list[0].ID)
	require.Equal(second.ID, list[1].ID)
}

func TestCampaignsDelete(t *testing.T) {
	require := require.New(t)

	s := NewCampaigns()
	c, err := s.Create("doomed", 100, validParams())
	require.NoError(err)

	require.True(s.Delete(c.ID))
	require.False(s.Delete(c.ID))
	_, ok := s.Get(c.ID)
	require.False(ok)
}

func TestResultCacheSetGetInvalidate(t *testing.T) {
	require := require.New(t)

	cache := NewResultCache(time.Minute)
	res := &sim.Result{Termination: sim.TermStreamExhausted}

	_, ok := cache.Get("c1")
	require.False(ok)

	cache.Set("c1", res)
	got, ok := cache.Get("c1")
	require.True(ok)
	require.Same(res, got)

	cache.Invalidate("c1")
	_, ok = cache.Get("c1")
	require.False(ok)
}

func TestResultCacheExpiry(t *testing.T) {
	require := require.New(t)

	cache := NewResultCache(time.Millisecond)
	cache.Set("c1", &sim.Result{})

	time.Sleep(5 * time.Millisecond)
	_, ok := cache.Get("c1")
	require.False(ok)
}

func TestResultCacheClear(t *testing.T) {
	require := require.New(t)

	cache := NewResultCache(time.Minute)
	cache.Set("c1", &sim.Result{})
	cache.Set("c2", &sim.Result{})
	cache.Clear()

	_, ok := cache.Get("c1")
	require.False(ok)
	_, ok = cache.Get("c2")
	require.False(ok)
}
