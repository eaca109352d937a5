package backtrack

import "testing"

func sameBacking(a, b []capSpan) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// TestContextCOW_Slices verifies the ownership rules behind context
// duplication: clone shares the capture and open-group slices, and the
// first write on either side makes a private copy.
func TestContextCOW_Slices(t *testing.T) {
	tests := []struct {
		name string
		ops  func(t *testing.T)
	}{
		{
			name: "clone strips ownership on both sides",
			ops: func(t *testing.T) {
				c := newContext("ab", 1, false)
				if !c.capsOwned {
					t.Fatal("fresh context should own its captures")
				}
				d := c.clone()
				if c.capsOwned || d.capsOwned {
					t.Error("clone() should strip capture ownership from both sides")
				}
				if !sameBacking(c.caps, d.caps) {
					t.Error("clone() should share the capture backing array")
				}
			},
		},
		{
			name: "first capture write after clone copies",
			ops: func(t *testing.T) {
				c := newContext("ab", 1, false)
				c.pushCapture(1)
				c.nextChar()
				d := c.clone()
				d.nextChar()
				d.updateOpenCaptures()
				if got := d.capturedText(1); got != "ab" {
					t.Errorf("writer sees %q, want %q", got, "ab")
				}
				if got := c.capturedText(1); got != "" {
					t.Errorf("sharer sees %q, want empty span", got)
				}
				if sameBacking(c.caps, d.caps) {
					t.Error("write on shared captures should have copied")
				}
			},
		},
		{
			name: "update with no open groups never copies",
			ops: func(t *testing.T) {
				c := newContext("ab", 1, false)
				d := c.clone()
				d.updateOpenCaptures()
				if !sameBacking(c.caps, d.caps) {
					t.Error("no-op update should not copy the capture array")
				}
			},
		},
		{
			name: "owned context updates in place",
			ops: func(t *testing.T) {
				c := newContext("ab", 1, false)
				before := &c.caps[0]
				c.pushCapture(1)
				c.nextChar()
				c.updateOpenCaptures()
				if &c.caps[0] != before {
					t.Error("owned context should not reallocate on update")
				}
			},
		},
		{
			name: "push after clone copies the open stack",
			ops: func(t *testing.T) {
				c := newContext("abc", 2, false)
				c.pushCapture(1)
				d := c.clone()
				d.popCapture()
				d.nextChar()
				// Without the copy this append would land in the slot
				// still holding the sharer's group 1.
				d.pushCapture(2)
				if c.open[0] != (openCapture{id: 1, start: 0}) {
					t.Errorf("sharer's open group clobbered: got %+v", c.open[0])
				}
				if d.open[0] != (openCapture{id: 2, start: 1}) {
					t.Errorf("writer's open group wrong: got %+v", d.open[0])
				}
			},
		},
		{
			name: "pop alone never copies",
			ops: func(t *testing.T) {
				c := newContext("ab", 1, false)
				c.pushCapture(1)
				d := c.clone()
				d.popCapture()
				if len(d.open) != 0 {
					t.Errorf("pop left %d open groups, want 0", len(d.open))
				}
				if len(c.open) != 1 || c.open[0].id != 1 {
					t.Error("pop on the duplicate disturbed the sharer")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ops(t)
		})
	}
}

// TestMatchCOW_FailedBranchLeavesCapturesUntouched exercises isolation
// through a full match: the first alternation branch records group 1 on
// its duplicate before failing, and that write must die with the
// duplicate.
func TestMatchCOW_FailedBranchLeavesCapturesUntouched(t *testing.T) {
	prog := mustCompile(t, "(ab)c|(a)d")
	m := NewMatcher(prog, "ad", false)
	match, ok := m.Next()
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Text != "ad" {
		t.Fatalf("matched %q, want %q", match.Text, "ad")
	}
	caps := m.Captures()
	if caps[0] != "" {
		t.Errorf("group 1 = %q, want empty: failed branch leaked its capture", caps[0])
	}
	if caps[1] != "a" {
		t.Errorf("group 2 = %q, want %q", caps[1], "a")
	}
}

// TestMatchCOW_GreedyFallbackKeepsCommittedCaptures drives the greedy
// loop past its last viable cursor. The repetition taken after the
// fallback was recorded updates group 1 on the live context; restoring
// the fallback must bring back the shorter span.
func TestMatchCOW_GreedyFallbackKeepsCommittedCaptures(t *testing.T) {
	prog := mustCompile(t, "(a*)ab")
	m := NewMatcher(prog, "aaab", false)
	match, ok := m.Next()
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Text != "aaab" {
		t.Fatalf("matched %q, want %q", match.Text, "aaab")
	}
	if caps := m.Captures(); caps[0] != "aa" {
		t.Errorf("group 1 = %q, want %q", caps[0], "aa")
	}
}

// TestMatchCOW_RepeatedScans runs many scans over the same program to
// shake out cross-attempt state leaks.
func TestMatchCOW_RepeatedScans(t *testing.T) {
	prog := mustCompile(t, "(a+)(b+)")
	for i := 0; i < 1000; i++ {
		m := NewMatcher(prog, "aaabbb", false)
		match, ok := m.Next()
		if !ok {
			t.Fatalf("iteration %d: expected match", i)
		}
		if s, e := match.Span(); s != 0 || e != 6 {
			t.Fatalf("iteration %d: wrong span (%d,%d)", i, s, e)
		}
		caps := m.Captures()
		if caps[0] != "aaa" || caps[1] != "bbb" {
			t.Fatalf("iteration %d: captures %v", i, caps)
		}
	}
}
