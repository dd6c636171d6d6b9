package graph

import (
	"strconv"
	"strings"
)

// Session owns the node id counters for one graph-construction lifetime.
// Ids are formed as the process id (underscores stripped, matching the wire
// convention: "load_collection" allocates "loadcollection1") followed by a
// per-process counter starting at 1.
//
// Sessions are not safe for concurrent use; give each goroutine its own.
type Session struct {
	counters map[string]int
}

// NewSession creates a session with all counters at zero.
func NewSession() *Session {
	return &Session{counters: map[string]int{}}
}

// NextID allocates the next id for the given process id. Ids returned by one
// session are pairwise distinct.
func (s *Session) NextID(processID string) string {
	prefix := idPrefix(processID)
	s.counters[prefix]++
	return prefix + strconv.Itoa(s.counters[prefix])
}

// Reset starts a fresh id sequence: subsequent allocations count from 1 again.
// Only reset between independent graphs; nodes allocated before the reset keep
// their ids, so mixing them with post-reset nodes in one graph risks
// collisions.
func (s *Session) Reset() {
	s.counters = map[string]int{}
}

// idPrefix derives the id prefix from a process id. Underscores are dropped so
// counters key on the prefix, keeping ids unique even for process ids that
// only differ in underscore placement.
func idPrefix(processID string) string {
	return strings.ReplaceAll(processID, "_", "")
}
