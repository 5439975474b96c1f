package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

func mathsAt(start time.Time) domain.Subject {
	return domain.Subject{ID: 1, Name: "Mathematics", StartTime: start, DurationMinutes: 120}
}

func TestGenerate_ExactPlayInstants(t *testing.T) {
	start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	tmpls := []domain.Template{
		{OffsetSeconds: -900, Label: "15-minute call", Audio: "call15.wav"},
		{OffsetSeconds: 0, Label: "Exam start", Audio: "start.wav"},
		{OffsetSeconds: 7200, Label: "Exam end", Audio: "end.wav"},
	}

	instrs, err := Generate(mathsAt(start), tmpls)
	require.NoError(t, err)
	require.Len(t, instrs, 3)

	assert.Equal(t, start.Add(-15*time.Minute), instrs[0].PlayAt)
	assert.Equal(t, start, instrs[1].PlayAt)
	assert.Equal(t, start.Add(2*time.Hour), instrs[2].PlayAt)

	for _, instr := range instrs {
		assert.Equal(t, int64(1), instr.SubjectID)
		assert.Equal(t, "Mathematics", instr.SubjectName)
		assert.Equal(t, domain.StatusUnplayed, instr.Status())
	}
}

func TestGenerate_SortsUnsortedTemplates(t *testing.T) {
	start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	tmpls := []domain.Template{
		{OffsetSeconds: 7200, Label: "end"},
		{OffsetSeconds: -900, Label: "call"},
		{OffsetSeconds: 0, Label: "start"},
	}

	instrs, err := Generate(mathsAt(start), tmpls)
	require.NoError(t, err)

	assert.Equal(t, "call", instrs[0].Label)
	assert.Equal(t, "start", instrs[1].Label)
	assert.Equal(t, "end", instrs[2].Label)
}

func TestGenerate_EqualOffsetsKeepInputOrder(t *testing.T) {
	start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	tmpls := []domain.Template{
		{OffsetSeconds: 0, Label: "first"},
		{OffsetSeconds: 0, Label: "second"},
	}

	instrs, err := Generate(mathsAt(start), tmpls)
	require.NoError(t, err)

	assert.Equal(t, "first", instrs[0].Label)
	assert.Equal(t, "second", instrs[1].Label)
}

func TestGenerate_NonPositiveDurationRejected(t *testing.T) {
	subject := mathsAt(time.Now())
	subject.DurationMinutes = 0

	_, err := Generate(subject, []domain.Template{{Label: "x"}})

	require.Error(t, err)
	assert.ErrorAs(t, err, new(*domain.InvalidDurationError))
}

func TestGenerate_NoTemplatesYieldsEmpty(t *testing.T) {
	instrs, err := Generate(mathsAt(time.Now()), nil)
	require.NoError(t, err)
	assert.Empty(t, instrs)
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	tmpls := []domain.Template{
		{OffsetSeconds: 100, Label: "b"},
		{OffsetSeconds: -100, Label: "a"},
	}

	_, err := Generate(mathsAt(time.Now()), tmpls)
	require.NoError(t, err)

	assert.Equal(t, 100, tmpls[0].OffsetSeconds)
	assert.Equal(t, -100, tmpls[1].OffsetSeconds)
}

func TestGenerate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
		offsets := rapid.SliceOfN(rapid.IntRange(-3600, 4*3600), 0, 40).Draw(t, "offsets")

		tmpls := make([]domain.Template, len(offsets))
		for i, off := range offsets {
			tmpls[i] = domain.Template{OffsetSeconds: off, Label: "announcement"}
		}

		instrs, err := Generate(mathsAt(start), tmpls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(offsets) == 0 {
			if len(instrs) != 0 {
				t.Fatalf("expected no instructions")
			}
			return
		}
		if len(instrs) != len(offsets) {
			t.Fatalf("expected %d instructions, got %d", len(offsets), len(instrs))
		}
		for i := 1; i < len(instrs); i++ {
			if instrs[i].PlayAt.Before(instrs[i-1].PlayAt) {
				t.Fatalf("instructions out of order at %d", i)
			}
		}
		for _, instr := range instrs {
			off := int(instr.PlayAt.Sub(start) / time.Second)
			found := false
			for _, o := range offsets {
				if o == off {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("play instant %v does not match any offset", instr.PlayAt)
			}
		}
	})
}
