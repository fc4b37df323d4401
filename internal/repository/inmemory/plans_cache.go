package inmemory

import (
	"sync"
	"time"

	plansdomain "fitclub-go/internal/domain/plans"
)

// PlansCache holds the plan catalogue until it expires or a plan is created.
type PlansCache struct {
	mu        sync.RWMutex
	value     []plansdomain.Plan
	expiresAt time.Time
	set       bool
}

func NewPlansCache() *PlansCache {
	return &PlansCache{}
}

func (c *PlansCache) Get() ([]plansdomain.Plan, bool) {
	now := time.Now()

	c.mu.RLock()
	value, expiresAt, set := c.value, c.expiresAt, c.set
	c.mu.RUnlock()
	if !set {
		return nil, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if c.set && !c.expiresAt.After(now) {
			c.value, c.set = nil, false
		}
		c.mu.Unlock()
		return nil, false
	}

	return clonePlans(value), true
}

func (c *PlansCache) Set(plans []plansdomain.Plan, ttl time.Duration) {
	if ttl <= 0 {
		c.Clear()
		return
	}

	c.mu.Lock()
	c.value = clonePlans(plans)
	c.expiresAt = time.Now().Add(ttl)
	c.set = true
	c.mu.Unlock()
}

func (c *PlansCache) Clear() {
	c.mu.Lock()
	c.value, c.set = nil, false
	c.mu.Unlock()
}

func clonePlans(plans []plansdomain.Plan) []plansdomain.Plan {
	if plans == nil {
		return []plansdomain.Plan{}
	}
	cloned := make([]plansdomain.Plan, len(plans))
	copy(cloned, plans)
	return cloned
}
