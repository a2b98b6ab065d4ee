package issue_test

import (
	"testing"

	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/quickfix"
)

func makeIssue(ruleID, path string, r issue.TextRange) issue.Issue {
	return issue.Issue{
		RuleID:  ruleID,
		Primary: issue.Location{Message: "m", FilePath: path, Range: r},
	}
}

func TestEqualForDedup(t *testing.T) {
	t.Parallel()

	base := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4})

	tests := []struct {
		name  string
		other issue.Issue
		want  bool
	}{
		{"identical", makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4}), true},
		{"different rule", makeIssue("cpp:S2", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4}), false},
		{"rule id case differs", makeIssue("cpp:s1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4}), false},
		{"different file", makeIssue("cpp:S1", "b.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4}), false},
		{"different start line", makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 9, StartOffset: 2, EndLine: 3, EndOffset: 4}), false},
		{"different start offset", makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 9, EndLine: 3, EndOffset: 4}), false},
		{"different end line", makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 9, EndOffset: 4}), false},
		{"different end offset", makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 9}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := issue.EqualForDedup(base, tt.other); got != tt.want {
				t.Errorf("EqualForDedup = %v, want %v", got, tt.want)
			}
			// Symmetry.
			if got := issue.EqualForDedup(tt.other, base); got != tt.want {
				t.Errorf("EqualForDedup (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupHash_EqualIssuesHashEqual(t *testing.T) {
	t.Parallel()

	a := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4})
	b := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, StartOffset: 2, EndLine: 3, EndOffset: 4})

	// Flows and fixes do not participate in the identity.
	b.Flows = []issue.Flow{{Locations: []issue.Location{{Message: "extra"}}}}
	b.Fixes = []quickfix.Fix{{Title: "fix"}}

	if issue.DedupHash(a) != issue.DedupHash(b) {
		t.Error("equal issues must hash equal")
	}
	if !issue.EqualForDedup(a, b) {
		t.Error("flows and fixes must not affect dedup equality")
	}
}

func TestSet_FirstInsertedWins(t *testing.T) {
	t.Parallel()

	first := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1})
	first.Fixes = []quickfix.Fix{{Title: "keep me"}}

	duplicate := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1})
	duplicate.Fixes = []quickfix.Fix{{Title: "lost"}}

	set := issue.NewSet(nil)
	if !set.Add(first) {
		t.Fatal("first insert should succeed")
	}
	if set.Add(duplicate) {
		t.Fatal("duplicate insert should be dropped")
	}

	got := set.Issues()
	if len(got) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(got))
	}
	if len(got[0].Fixes) != 1 || got[0].Fixes[0].Title != "keep me" {
		t.Error("the first-inserted issue must survive intact")
	}
	if set.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", set.Dropped())
	}
}

func TestSet_InsertionOrderIndependence(t *testing.T) {
	t.Parallel()

	a := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1})
	b := makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1})

	forward := issue.NewSet(nil)
	forward.Add(a)
	forward.Add(b)

	backward := issue.NewSet(nil)
	backward.Add(b)
	backward.Add(a)

	if forward.Len() != 1 || backward.Len() != 1 {
		t.Errorf("set sizes = %d, %d; want 1, 1 regardless of insertion order", forward.Len(), backward.Len())
	}
}

func TestSet_DistinctIssuesAllSurvive(t *testing.T) {
	t.Parallel()

	set := issue.NewSet(nil)
	set.Add(makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1}))
	set.Add(makeIssue("cpp:S2", "a.cpp", issue.TextRange{StartLine: 1, EndLine: 1}))
	set.Add(makeIssue("cpp:S1", "b.cpp", issue.TextRange{StartLine: 1, EndLine: 1}))
	set.Add(makeIssue("cpp:S1", "a.cpp", issue.TextRange{StartLine: 2, EndLine: 2}))

	if set.Len() != 4 {
		t.Errorf("Len = %d, want 4", set.Len())
	}
	if set.Dropped() != 0 {
		t.Errorf("Dropped = %d, want 0", set.Dropped())
	}
}
