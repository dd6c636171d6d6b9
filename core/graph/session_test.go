package graph

import "testing"

// TestNextIDSequence verifies per-process counters starting at 1.
func TestNextIDSequence(t *testing.T) {
	s := NewSession()
	if got := s.NextID("foo"); got != "foo1" {
		t.Errorf("expected foo1, got %q", got)
	}
	if got := s.NextID("foo"); got != "foo2" {
		t.Errorf("expected foo2, got %q", got)
	}
	if got := s.NextID("bar"); got != "bar1" {
		t.Errorf("expected bar1, got %q", got)
	}
	if got := s.NextID("foo"); got != "foo3" {
		t.Errorf("expected foo3, got %q", got)
	}
}

// TestNextIDStripsUnderscores verifies the wire id convention.
func TestNextIDStripsUnderscores(t *testing.T) {
	s := NewSession()
	if got := s.NextID("load_collection"); got != "loadcollection1" {
		t.Errorf("expected loadcollection1, got %q", got)
	}
	if got := s.NextID("array_element"); got != "arrayelement1" {
		t.Errorf("expected arrayelement1, got %q", got)
	}
	if got := s.NextID("reduce_dimension"); got != "reducedimension1" {
		t.Errorf("expected reducedimension1, got %q", got)
	}
}

// TestNextIDPairwiseDistinct verifies allocations never repeat within a session.
func TestNextIDPairwiseDistinct(t *testing.T) {
	s := NewSession()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		for _, process := range []string{"add", "multiply", "reduce_dimension"} {
			id := s.NextID(process)
			if seen[id] {
				t.Fatalf("id %q allocated twice", id)
			}
			seen[id] = true
		}
	}
}

// TestReset verifies an explicit reset starts the sequence over.
func TestReset(t *testing.T) {
	s := NewSession()
	s.NextID("foo")
	s.NextID("foo")
	s.Reset()
	if got := s.NextID("foo"); got != "foo1" {
		t.Errorf("expected foo1 after reset, got %q", got)
	}
}

// TestSessionsIsolated verifies two sessions never share counters.
func TestSessionsIsolated(t *testing.T) {
	a, b := NewSession(), NewSession()
	if got := a.NextID("foo"); got != "foo1" {
		t.Errorf("expected foo1, got %q", got)
	}
	if got := b.NextID("foo"); got != "foo1" {
		t.Errorf("expected independent foo1, got %q", got)
	}
}
