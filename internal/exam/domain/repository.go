package domain

// SubjectRepository persists the subject roster so a restarted proctor can
// re-register its subjects. Scheduler state (statuses, pointers) is never
// persisted; it is recomputed from wall-clock time on startup.
type SubjectRepository interface {
	// Save stores a new subject and assigns its ID. IDs are monotonically
	// increasing and never reused, even across restarts.
	Save(subject *Subject) error

	// List returns all registered subjects ordered by start time.
	List() ([]Subject, error)

	// Delete removes a subject by ID. Deleting an unknown ID is a no-op.
	Delete(id int64) error
}
