package service

import (
	"fmt"
	"time"

	"task-assistant/pkg/cache"
	"task-assistant/pkg/common"
)

// overdueGateTTL keeps entries around long enough to cover the current and
// previous hour bucket; older entries are evicted by the cache itself. The
// gate is process-local: a restart within the same hour can re-send one
// digest, which is an accepted limitation.
const overdueGateTTL = 2 * time.Hour

// OverdueGate prevents more than one overdue digest per user per hour bucket.
type OverdueGate struct {
	cache cache.Cache
}

func NewOverdueGate(c cache.Cache) *OverdueGate {
	return &OverdueGate{cache: c}
}

// Allowed reports whether a digest may be sent for the given hour bucket.
// It does not record anything; call Record once a send actually succeeded.
func (g *OverdueGate) Allowed(userID uint, bucket time.Time) bool {
	v, ok := g.cache.Get(g.key(userID))
	if !ok {
		return true
	}
	last, ok := v.(time.Time)
	if !ok {
		return true
	}
	return last.Before(bucket)
}

// Record marks the bucket as sent for the user.
func (g *OverdueGate) Record(userID uint, bucket time.Time) {
	g.cache.Set(g.key(userID), bucket, overdueGateTTL)
}

func (g *OverdueGate) key(userID uint) string {
	return fmt.Sprintf(common.KEY_OVERDUE_DIGEST, userID)
}
