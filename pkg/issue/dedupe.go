package issue

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
)

// hashSeed and hashPrime drive the multiplicative hash combination.
// Stable across runs so ordering-insensitive dedup stays deterministic.
const (
	hashSeed  uint64 = 17
	hashPrime uint64 = 31
)

// EqualForDedup reports whether two issues are the same finding for
// deduplication purposes: same rule id, same primary file path (both
// ordinal), and all four primary range bounds equal. Flows and fixes are
// deliberately not compared.
func EqualForDedup(a, b Issue) bool {
	return a.RuleID == b.RuleID &&
		a.Primary.FilePath == b.Primary.FilePath &&
		a.Primary.Range == b.Primary.Range
}

// DedupHash combines the dedup identity fields into a stable,
// order-sensitive hash.
func DedupHash(i Issue) uint64 {
	h := hashSeed
	h = h*hashPrime + stringHash(i.RuleID)
	h = h*hashPrime + stringHash(i.Primary.FilePath)
	h = h*hashPrime + uint64(i.Primary.Range.StartLine)
	h = h*hashPrime + uint64(i.Primary.Range.StartOffset)
	h = h*hashPrime + uint64(i.Primary.Range.EndLine)
	h = h*hashPrime + uint64(i.Primary.Range.EndOffset)
	return h
}

// stringHash is the classic multiplicative string hash.
func stringHash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*hashPrime + uint64(s[i])
	}
	return h
}

// Set is a uniqueness set over issues using the dedup identity. The first
// inserted issue wins; a duplicate is dropped with its flows and fixes
// (the merge of secondary data across duplicates is intentionally not
// attempted).
type Set struct {
	buckets map[uint64][]Issue
	ordered []Issue
	dropped int
	logger  *log.Logger
}

// NewSet creates an empty dedup set.
func NewSet(logger *log.Logger) *Set {
	if logger == nil {
		logger = logging.Default()
	}
	return &Set{
		buckets: make(map[uint64][]Issue),
		logger:  logger,
	}
}

// Add inserts an issue unless an equal one is already present. Returns
// true when the issue was inserted, false when it was dropped as a
// duplicate.
func (s *Set) Add(i Issue) bool {
	h := DedupHash(i)
	for _, existing := range s.buckets[h] {
		if EqualForDedup(existing, i) {
			s.dropped++
			s.logger.Debug("dropped duplicate issue",
				logging.FieldRule, i.RuleID,
				logging.FieldPath, i.Primary.FilePath)
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], i)
	s.ordered = append(s.ordered, i)
	return true
}

// Issues returns the unique issues in insertion order.
func (s *Set) Issues() []Issue {
	out := make([]Issue, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Dropped returns how many duplicates were discarded.
func (s *Set) Dropped() int {
	return s.dropped
}

// Len returns the number of unique issues.
func (s *Set) Len() int {
	return len(s.ordered)
}
