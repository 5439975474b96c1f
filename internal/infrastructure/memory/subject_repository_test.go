package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

func TestSave_AssignsMonotonicIDs(t *testing.T) {
	repo := NewSubjectRepository()

	a := domain.Subject{Name: "Mathematics", StartTime: time.Now(), DurationMinutes: 120}
	b := domain.Subject{Name: "English", StartTime: time.Now(), DurationMinutes: 120}
	require.NoError(t, repo.Save(&a))
	require.NoError(t, repo.Save(&b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.NotEmpty(t, a.GUID)
}

func TestSave_IDsNeverReused(t *testing.T) {
	repo := NewSubjectRepository()

	a := domain.Subject{Name: "Mathematics", StartTime: time.Now(), DurationMinutes: 120}
	require.NoError(t, repo.Save(&a))
	require.NoError(t, repo.Delete(a.ID))

	b := domain.Subject{Name: "English", StartTime: time.Now(), DurationMinutes: 120}
	require.NoError(t, repo.Save(&b))

	assert.Greater(t, b.ID, a.ID)
}

func TestList_OrderedByStartTime(t *testing.T) {
	repo := NewSubjectRepository()
	base := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	late := domain.Subject{Name: "Late", StartTime: base.Add(2 * time.Hour), DurationMinutes: 90}
	early := domain.Subject{Name: "Early", StartTime: base, DurationMinutes: 90}
	require.NoError(t, repo.Save(&late))
	require.NoError(t, repo.Save(&early))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Name)
	assert.Equal(t, "Late", list[1].Name)
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	repo := NewSubjectRepository()
	assert.NoError(t, repo.Delete(42))
}
