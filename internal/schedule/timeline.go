// Package schedule owns the global instruction timeline and the tick-driven
// playback scheduler that walks it.
package schedule

import (
	"sort"
	"time"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// Timeline is the time-ordered collection of all instructions across all
// registered subjects, ordered ascending by play instant with ties kept in
// insertion order.
type Timeline struct {
	items []*domain.Instruction
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Len returns the number of instructions.
func (t *Timeline) Len() int {
	return len(t.items)
}

// At returns the instruction at index i, or nil if i is out of range.
func (t *Timeline) At(i int) *domain.Instruction {
	if i < 0 || i >= len(t.items) {
		return nil
	}
	return t.items[i]
}

// Items returns the instructions in timeline order. The slice is a copy;
// the instructions are shared.
func (t *Timeline) Items() []*domain.Instruction {
	out := make([]*domain.Instruction, len(t.items))
	copy(out, t.items)
	return out
}

// IndexOf returns the index of the given instruction, or -1.
func (t *Timeline) IndexOf(instr *domain.Instruction) int {
	for i, it := range t.items {
		if it == instr {
			return i
		}
	}
	return -1
}

// Append merges new instructions into the timeline, preserving global
// ascending play-instant order.
func (t *Timeline) Append(instrs ...*domain.Instruction) {
	t.items = append(t.items, instrs...)
	t.sort()
}

// RemoveSubject removes every instruction owned by the given subject and
// returns how many were removed. Order and status of the remaining
// instructions are untouched.
func (t *Timeline) RemoveSubject(subjectID int64) int {
	kept := t.items[:0]
	removed := 0
	for _, it := range t.items {
		if it.SubjectID == subjectID {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(t.items); i++ {
		t.items[i] = nil
	}
	t.items = kept
	return removed
}

// Replace swaps the whole timeline for a newly generated instruction set.
// Used when the template source is reloaded.
func (t *Timeline) Replace(instrs []*domain.Instruction) {
	t.items = append(t.items[:0:0], instrs...)
	t.sort()
}

// FirstUnplayed returns the index of the first unplayed instruction in
// timeline order, or -1 if none remain.
func (t *Timeline) FirstUnplayed() int {
	return t.FirstUnplayedAfter(-1)
}

// FirstUnplayedAfter returns the index of the first unplayed instruction
// strictly after index i, or -1.
func (t *Timeline) FirstUnplayedAfter(i int) int {
	for j := i + 1; j < len(t.items); j++ {
		if t.items[j].Status() == domain.StatusUnplayed {
			return j
		}
	}
	return -1
}

// ExpireOverdue marks every unplayed instruction whose play instant is more
// than the grace window before now as skipped, and returns them.
func (t *Timeline) ExpireOverdue(now time.Time) []*domain.Instruction {
	var expired []*domain.Instruction
	for _, it := range t.items {
		if it.Status() == domain.StatusUnplayed && it.Expired(now) {
			if err := it.MarkSkipped(); err == nil {
				expired = append(expired, it)
			}
		}
	}
	return expired
}

func (t *Timeline) sort() {
	sort.SliceStable(t.items, func(a, b int) bool {
		return t.items[a].PlayAt.Before(t.items[b].PlayAt)
	})
}
