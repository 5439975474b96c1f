package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// subjectRepository implements domain.SubjectRepository over SQLite.
type subjectRepository struct {
	db *sql.DB
}

func newSubjectRepository(db *sql.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

// Save stores a new subject. The AUTOINCREMENT rowid provides the
// process-unique, monotonically increasing, never-reused ID the scheduler
// keys instructions on, surviving restarts. A missing GUID is assigned.
func (r *subjectRepository) Save(subject *domain.Subject) error {
	if subject.GUID == "" {
		subject.GUID = uuid.NewString()
	}
	model := toSubjectModel(subject)

	result, err := r.db.Exec(`
		INSERT INTO subjects (guid, name, start_at, duration_minutes, double_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		model.GUID, model.Name, model.StartAt, model.DurationMinutes,
		model.DoubleSession, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("inserting subject %q: %w", subject.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading subject id: %w", err)
	}
	subject.ID = id
	return nil
}

// List returns all registered subjects ordered by start time.
func (r *subjectRepository) List() ([]domain.Subject, error) {
	rows, err := r.db.Query(`
		SELECT id, guid, name, start_at, duration_minutes, double_session
		FROM subjects
		ORDER BY start_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subjects []domain.Subject
	for rows.Next() {
		var m SubjectModel
		if err := rows.Scan(&m.ID, &m.GUID, &m.Name, &m.StartAt,
			&m.DurationMinutes, &m.DoubleSession); err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		subjects = append(subjects, m.toDomainSubject())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subject rows: %w", err)
	}
	return subjects, nil
}

// Delete removes a subject by ID.
func (r *subjectRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM subjects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting subject %d: %w", id, err)
	}
	return nil
}
