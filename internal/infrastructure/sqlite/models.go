package sqlite

import (
	"time"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// SubjectModel represents the database row for the subjects table.
// Time values are Unix timestamps.
type SubjectModel struct {
	ID              int64
	GUID            string
	Name            string
	StartAt         int64
	DurationMinutes int64
	DoubleSession   bool
	CreatedAt       int64
}

// toSubjectModel converts a domain Subject to a database row.
func toSubjectModel(s *domain.Subject) *SubjectModel {
	return &SubjectModel{
		ID:              s.ID,
		GUID:            s.GUID,
		Name:            s.Name,
		StartAt:         s.StartTime.Unix(),
		DurationMinutes: int64(s.DurationMinutes),
		DoubleSession:   s.DoubleSession,
	}
}

// toDomainSubject converts a database row back to a domain Subject.
// Start times come back in the local location, matching how the operator
// entered them.
func (m *SubjectModel) toDomainSubject() domain.Subject {
	return domain.Subject{
		ID:              m.ID,
		GUID:            m.GUID,
		Name:            m.Name,
		StartTime:       time.Unix(m.StartAt, 0).Local(),
		DurationMinutes: int(m.DurationMinutes),
		DoubleSession:   m.DoubleSession,
	}
}
