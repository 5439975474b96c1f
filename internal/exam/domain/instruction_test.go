package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestInstruction() *Instruction {
	playAt := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	return NewInstruction(1, "Mathematics", "Exam start", playAt, "start.wav")
}

func TestInstruction_StartsUnplayed(t *testing.T) {
	instr := newTestInstruction()
	assert.Equal(t, StatusUnplayed, instr.Status())
}

func TestInstruction_HappyPath(t *testing.T) {
	instr := newTestInstruction()

	require.NoError(t, instr.MarkPlaying())
	assert.Equal(t, StatusPlaying, instr.Status())

	require.NoError(t, instr.MarkPlayed())
	assert.Equal(t, StatusPlayed, instr.Status())
}

func TestInstruction_SkipPath(t *testing.T) {
	instr := newTestInstruction()

	require.NoError(t, instr.MarkSkipped())
	assert.Equal(t, StatusSkipped, instr.Status())
}

func TestInstruction_IllegalTransitions(t *testing.T) {
	t.Run("unplayed cannot complete", func(t *testing.T) {
		instr := newTestInstruction()
		err := instr.MarkPlayed()
		require.Error(t, err)
		assert.Equal(t, StatusUnplayed, instr.Status())
	})

	t.Run("playing cannot skip", func(t *testing.T) {
		instr := newTestInstruction()
		require.NoError(t, instr.MarkPlaying())
		require.Error(t, instr.MarkSkipped())
		assert.Equal(t, StatusPlaying, instr.Status())
	})

	t.Run("played is terminal", func(t *testing.T) {
		instr := newTestInstruction()
		require.NoError(t, instr.MarkPlaying())
		require.NoError(t, instr.MarkPlayed())
		assert.Error(t, instr.MarkPlaying())
		assert.Error(t, instr.MarkSkipped())
		assert.Equal(t, StatusPlayed, instr.Status())
	})

	t.Run("skipped is terminal", func(t *testing.T) {
		instr := newTestInstruction()
		require.NoError(t, instr.MarkSkipped())
		assert.Error(t, instr.MarkPlaying())
		assert.Error(t, instr.MarkPlayed())
		assert.Equal(t, StatusSkipped, instr.Status())
	})
}

func TestInstruction_TransitionErrorMessage(t *testing.T) {
	instr := newTestInstruction()
	err := instr.MarkPlayed()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unplayed")
	assert.Contains(t, err.Error(), "played")
}

func TestPlaybackStatus_Terminal(t *testing.T) {
	assert.False(t, StatusUnplayed.Terminal())
	assert.False(t, StatusPlaying.Terminal())
	assert.True(t, StatusPlayed.Terminal())
	assert.True(t, StatusSkipped.Terminal())
}

func TestInstruction_DueAndExpired(t *testing.T) {
	instr := newTestInstruction()
	playAt := instr.PlayAt

	assert.False(t, instr.Due(playAt.Add(-time.Second)))
	assert.True(t, instr.Due(playAt))
	assert.True(t, instr.Due(playAt.Add(time.Second)))

	assert.False(t, instr.Expired(playAt.Add(GraceWindow)))
	assert.True(t, instr.Expired(playAt.Add(GraceWindow+time.Second)))
}

// Any sequence of transition attempts can only move a status forward along
// unplayed -> playing -> played, or unplayed -> skipped.
func TestInstruction_TransitionsNeverRegress(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		instr := newTestInstruction()
		seen := []PlaybackStatus{instr.Status()}

		steps := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 20).Draw(t, "steps")
		for _, step := range steps {
			switch step {
			case 0:
				_ = instr.MarkPlaying()
			case 1:
				_ = instr.MarkPlayed()
			case 2:
				_ = instr.MarkSkipped()
			}
			seen = append(seen, instr.Status())
		}

		rank := map[PlaybackStatus]int{
			StatusUnplayed: 0, StatusPlaying: 1, StatusPlayed: 2, StatusSkipped: 2,
		}
		for i := 1; i < len(seen); i++ {
			if rank[seen[i]] < rank[seen[i-1]] {
				t.Fatalf("status regressed from %s to %s", seen[i-1], seen[i])
			}
			if seen[i-1].Terminal() && seen[i] != seen[i-1] {
				t.Fatalf("terminal status %s changed to %s", seen[i-1], seen[i])
			}
		}
	})
}
