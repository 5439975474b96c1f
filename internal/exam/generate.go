// Package exam turns registered subjects and their announcement templates
// into concrete, time-stamped instructions.
package exam

import (
	"sort"
	"time"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// Generate maps a subject and its (possibly unsorted) templates to the
// subject's instruction sequence, ordered ascending by offset. A subject
// with no templates yields an empty sequence; that is not an error.
//
// Generate is a pure function of its inputs: it performs no I/O and does
// not retain or mutate the template slice it is given.
func Generate(subject domain.Subject, templates []domain.Template) ([]*domain.Instruction, error) {
	if subject.DurationMinutes <= 0 {
		return nil, &domain.InvalidDurationError{Subject: subject.Name, Minutes: subject.DurationMinutes}
	}
	if len(templates) == 0 {
		return nil, nil
	}

	sorted := make([]domain.Template, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].OffsetSeconds < sorted[b].OffsetSeconds
	})

	instructions := make([]*domain.Instruction, 0, len(sorted))
	for _, tmpl := range sorted {
		playAt := subject.StartTime.Add(time.Duration(tmpl.OffsetSeconds) * time.Second)
		instructions = append(instructions,
			domain.NewInstruction(subject.ID, subject.Name, tmpl.Label, playAt, tmpl.Audio))
	}
	return instructions, nil
}
