// Package memory provides an in-memory SubjectRepository for running
// without a roster database.
package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// SubjectRepository keeps the roster in process memory. IDs are monotonic
// and never reused for the lifetime of the process; nothing survives exit.
type SubjectRepository struct {
	nextID   int64
	subjects map[int64]domain.Subject
}

// NewSubjectRepository returns an empty in-memory repository.
func NewSubjectRepository() *SubjectRepository {
	return &SubjectRepository{subjects: map[int64]domain.Subject{}}
}

// Save stores a new subject and assigns its ID and GUID.
func (r *SubjectRepository) Save(subject *domain.Subject) error {
	if subject.GUID == "" {
		subject.GUID = uuid.NewString()
	}
	r.nextID++
	subject.ID = r.nextID
	r.subjects[subject.ID] = *subject
	return nil
}

// List returns all subjects ordered by start time, ties by ID.
func (r *SubjectRepository) List() ([]domain.Subject, error) {
	out := make([]domain.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].StartTime.Equal(out[b].StartTime) {
			return out[a].ID < out[b].ID
		}
		return out[a].StartTime.Before(out[b].StartTime)
	})
	return out, nil
}

// Delete removes a subject by ID. Unknown IDs are a no-op.
func (r *SubjectRepository) Delete(id int64) error {
	delete(r.subjects, id)
	return nil
}
