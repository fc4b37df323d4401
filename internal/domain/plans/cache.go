package plans

import "time"

type Cache interface {
	Get() ([]Plan, bool)
	Set(plans []Plan, ttl time.Duration)
	Clear()
}

type noopCache struct{}

func (noopCache) Get() ([]Plan, bool) {
	return nil, false
}

func (noopCache) Set([]Plan, time.Duration) {}

func (noopCache) Clear() {}
