package store

import (
	"sort"
	"sync"
	"time"

	"bidwise/internal/model"

	"github.com/google/uuid"
)

// Campaigns is an in-memory campaign store. Campaign configuration is
// process-local; durability is out of scope for this service.
type Campaigns struct {
	mu    sync.RWMutex
	items map[string]model.Campaign
}

func NewCampaigns() *Campaigns {
	return &Campaigns{items: make(map[string]model.Campaign)}
}

// Create validates and stores a new campaign, assigning its id and creation
// time.
func (s *Campaigns) Create(name string, totalBudget float64, params model.StrategyParams) (model.Campaign, error) {
	c := model.Campaign{
		ID:          uuid.NewString(),
		Name:        name,
		TotalBudget: totalBudget,
		Params:      params,
		Status:      "active",
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return model.Campaign{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
	return c, nil
}

func (s *Campaigns) Get(id string) (model.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	return c, ok
}

// List returns all campaigns ordered by creation time.
func (s *Campaigns) List() []model.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Campaign, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Delete removes a campaign. It reports whether the campaign existed.
func (s *Campaigns) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}
