package schedule

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/log"
)

// Clock is used for time operations (allows testing).
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the real time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Sink is the audio collaborator the scheduler triggers. Play is
// fire-and-forget; Duration returns seconds, with any value <= 0 meaning
// "unknown".
type Sink interface {
	Play(audioRef string)
	Duration(audioRef string) float64
}

// Config configures a Scheduler.
type Config struct {
	// Sink starts playback and answers duration queries. Required.
	Sink Sink

	// OnEvent is called synchronously for every state change. Optional.
	OnEvent EventCallback

	// Clock is used for time operations. Defaults to the real time.
	Clock Clock

	// Tracer records a span per tick when set. Optional.
	Tracer trace.Tracer

	// Meter records announcement counters and tick timings when set. Optional.
	Meter metric.Meter
}

// Scheduler owns the current-playing and next-pending pointers into the
// timeline and decides, on every tick, whether to skip, wait, or trigger.
//
// All methods must be called from a single goroutine; in proctor that is
// the Bubble Tea update loop, which serializes the 1-second tick with
// manual operator commands.
type Scheduler struct {
	timeline *Timeline
	sink     Sink
	onEvent  EventCallback
	clock    Clock
	tracer   trace.Tracer
	metrics  *metrics

	// current and next are stable pointers rather than indices, so a
	// timeline resize cannot silently redirect them to the wrong element.
	current   *domain.Instruction
	next      *domain.Instruction
	startedAt time.Time // valid only while current is playing
}

// New creates a Scheduler over an empty timeline.
func New(cfg Config) *Scheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{
		timeline: NewTimeline(),
		sink:     cfg.Sink,
		onEvent:  cfg.OnEvent,
		clock:    clock,
		tracer:   cfg.Tracer,
		metrics:  newMetrics(cfg.Meter),
	}
}

// Timeline returns the scheduler's timeline for read access. Mutations must
// go through the scheduler so the pointers stay consistent.
func (s *Scheduler) Timeline() *Timeline {
	return s.timeline
}

// CurrentIndex returns the timeline index of the playing instruction, or -1.
func (s *Scheduler) CurrentIndex() int {
	if s.current == nil {
		return -1
	}
	return s.timeline.IndexOf(s.current)
}

// NextIndex returns the timeline index of the next pending instruction, or -1.
func (s *Scheduler) NextIndex() int {
	if s.next == nil {
		return -1
	}
	return s.timeline.IndexOf(s.next)
}

// Tick runs one scheduling pass at the clock's current time. It is driven
// once per second; calling it again with no elapsed time and no timeline
// changes produces no state transitions.
func (s *Scheduler) Tick() {
	now := s.clock.Now()
	started := time.Now()
	defer func() { s.metrics.recordTick(time.Since(started)) }()

	if s.tracer != nil {
		_, span := s.tracer.Start(context.Background(), "scheduler.tick",
			trace.WithAttributes(
				attribute.Int("timeline.len", s.timeline.Len()),
				attribute.Bool("playing", s.isPlaying()),
			))
		defer span.End()
	}

	// An in-flight announcement blocks everything else this tick.
	if s.isPlaying() {
		s.checkPlaybackCompletion(now)
		return
	}

	// Expire stale instructions before validating the next pointer, so a
	// pointer that went stale this very tick is replaced this very tick.
	for _, instr := range s.timeline.ExpireOverdue(now) {
		log.Info(log.CatScheduler, "instruction expired",
			"label", instr.Label, "play_at", instr.PlayAt)
		s.emit(Event{Type: EventExpired, Instruction: instr, Index: s.timeline.IndexOf(instr), At: now})
	}

	if s.next == nil || s.next.Status() != domain.StatusUnplayed {
		s.next = s.timeline.At(s.timeline.FirstUnplayed())
	}

	if s.next != nil && s.next.Due(now) && !s.next.Expired(now) {
		s.play(s.timeline.IndexOf(s.next), false, now)
	}
}

// Play triggers the instruction at the given timeline index. Manual play
// fast-forwards the timeline: every still-unplayed instruction earlier in
// the timeline is skipped. An out-of-range index is a no-op.
func (s *Scheduler) Play(index int, manual bool) {
	s.play(index, manual, s.clock.Now())
}

func (s *Scheduler) play(index int, manual bool, now time.Time) {
	instr := s.timeline.At(index)
	if instr == nil {
		return
	}

	// Only a pending instruction can start. Refuse before the fast-forward
	// and pre-emption side effects below, or a mistargeted manual play would
	// skip earlier slots and retire the in-flight announcement for nothing.
	if instr.Status() != domain.StatusUnplayed {
		log.Warn(log.CatScheduler, "refusing to play instruction",
			"label", instr.Label, "status", string(instr.Status()))
		return
	}

	// An automatic trigger must never fire for an already-expired slot;
	// tick jitter could otherwise play an announcement a minute late.
	if !manual && instr.Expired(now) {
		if err := instr.MarkSkipped(); err == nil {
			s.emit(Event{Type: EventExpired, Instruction: instr, Index: index, At: now})
		}
		s.next = s.timeline.At(s.timeline.FirstUnplayed())
		return
	}

	if manual {
		for i := 0; i < index; i++ {
			earlier := s.timeline.At(i)
			if earlier.Status() != domain.StatusUnplayed {
				continue
			}
			if err := earlier.MarkSkipped(); err == nil {
				s.emit(Event{Type: EventFastForwarded, Instruction: earlier, Index: i, At: now})
			}
		}
	}

	// Retire a still-playing instruction before starting the new one.
	if s.isPlaying() {
		if err := s.current.MarkPlayed(); err == nil {
			s.emit(Event{Type: EventCompleted, Instruction: s.current,
				Index: s.timeline.IndexOf(s.current), At: now, Preempted: true})
		}
	}

	if err := instr.MarkPlaying(); err != nil {
		log.ErrorErr(log.CatScheduler, "starting instruction", err, "label", instr.Label)
		return
	}

	s.current = instr
	s.startedAt = now
	s.sink.Play(instr.AudioRef)
	log.Info(log.CatScheduler, "instruction playing",
		"label", instr.Label, "subject", instr.SubjectName, "manual", manual)
	s.emit(Event{Type: EventTriggered, Instruction: instr, Index: index, At: now, Manual: manual})

	if manual {
		s.next = s.timeline.At(s.timeline.FirstUnplayedAfter(index))
	} else {
		s.next = s.timeline.At(s.timeline.FirstUnplayed())
	}
}

// checkPlaybackCompletion infers completion from elapsed wall-clock time
// against the sink's queried duration. There is no completion callback; an
// unknown duration presumes completion immediately so a missing or broken
// audio file can never stall the exam clock.
func (s *Scheduler) checkPlaybackCompletion(now time.Time) {
	duration := s.sink.Duration(s.current.AudioRef)
	if duration <= 0 {
		s.finishCurrent(now, true)
		return
	}
	elapsed := now.Sub(s.startedAt).Seconds()
	if elapsed >= duration {
		s.finishCurrent(now, false)
	}
}

func (s *Scheduler) finishCurrent(now time.Time, presumed bool) {
	finished := s.current
	index := s.timeline.IndexOf(finished)
	if err := finished.MarkPlayed(); err != nil {
		log.ErrorErr(log.CatScheduler, "retiring current instruction", err, "label", finished.Label)
	}
	s.current = nil
	s.next = s.timeline.At(s.timeline.FirstUnplayed())
	log.Info(log.CatScheduler, "instruction completed",
		"label", finished.Label, "presumed", presumed)
	s.emit(Event{Type: EventCompleted, Instruction: finished, Index: index, At: now, Presumed: presumed})
}

// AddInstructions merges a subject's generated instructions into the
// timeline and recomputes the pending pointer.
func (s *Scheduler) AddInstructions(instrs []*domain.Instruction) {
	if len(instrs) == 0 {
		return
	}
	s.timeline.Append(instrs...)
	s.revalidate()
}

// RemoveSubject purges every instruction owned by the subject and returns
// how many were removed. If the subject's own announcement was playing, the
// playing pointer is dropped; audio already handed to the sink is not
// interrupted (there is no cancellation primitive).
func (s *Scheduler) RemoveSubject(subjectID int64) int {
	removed := s.timeline.RemoveSubject(subjectID)
	if removed > 0 {
		s.revalidate()
	}
	return removed
}

// Rebuild replaces the whole timeline after a template reload. Current and
// next pointers reset to none and are recomputed on the next tick.
func (s *Scheduler) Rebuild(instrs []*domain.Instruction) {
	s.timeline.Replace(instrs)
	s.current = nil
	s.next = nil
}

// revalidate recomputes both pointers from scratch after a structural
// timeline change.
func (s *Scheduler) revalidate() {
	if s.current != nil && s.timeline.IndexOf(s.current) < 0 {
		s.current = nil
	}
	s.next = s.timeline.At(s.timeline.FirstUnplayed())
}

func (s *Scheduler) isPlaying() bool {
	return s.current != nil && s.current.Status() == domain.StatusPlaying
}

func (s *Scheduler) emit(ev Event) {
	s.metrics.recordEvent(ev)
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}
