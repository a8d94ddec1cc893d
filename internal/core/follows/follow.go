package follows

import "time"

// Follow is a directed edge from FollowerID to FollowedID. A removed edge
// keeps its row with RemovedAt set so a later re-follow reactivates it.
type Follow struct {
	CreatedAt  time.Time  `json:"createdAt"`
	RemovedAt  *time.Time `json:"removedAt,omitempty"`
	FollowerID string     `json:"followerId"`
	FollowedID string     `json:"followedId"`
}

// Active reports whether the edge currently counts for visibility and friendship
func (f *Follow) Active() bool {
	return f.RemovedAt == nil
}
