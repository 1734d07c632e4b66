package grade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
)

type AutoSaveStatus int

const (
	StatusIdle AutoSaveStatus = iota
	StatusSaving
	StatusSaved
	StatusError
)

func (s AutoSaveStatus) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s AutoSaveStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AutoSaveStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "saving":
		*s = StatusSaving
	case "saved":
		*s = StatusSaved
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown auto save status %q", text)
	}
	return nil
}

// SaveFunc persists a snapshot of the edited module states.
type SaveFunc func(ctx context.Context, raw map[int]academic.RawState) error

// AutoSaver debounces edits to a grade record and writes them behind the editor.
//
// Every edit bumps a generation and re-arms the timer. When the timer fires the
// current state is saved; at most one save runs at a time, and edits made while
// a save runs are picked up by a follow-up save once it completes. A save only
// settles the status when no newer edit exists.
type AutoSaver struct {
	delay  time.Duration
	save   SaveFunc
	logger core.Logger

	mu         sync.Mutex
	state      map[int]academic.RawState
	timer      *time.Timer
	generation uint64
	savedGen   uint64
	saving     bool
	done       chan struct{}
	closed     bool
	status     AutoSaveStatus
	lastErr    error
	settledAt  time.Time
}

func NewAutoSaver(delay time.Duration, save SaveFunc, logger core.Logger) *AutoSaver {
	return &AutoSaver{
		delay:     delay,
		save:      save,
		logger:    logger,
		state:     make(map[int]academic.RawState),
		settledAt: time.Now(),
	}
}

// Edit records the latest state of a module and restarts the quiet period.
func (s *AutoSaver) Edit(moduleID int, raw academic.RawState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.state[moduleID] = raw
	s.generation++
	if !s.saving {
		s.status = StatusIdle
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Status returns the save status and the error of the last failed save.
func (s *AutoSaver) Status() (AutoSaveStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Pending reports whether edits are waiting to be saved.
func (s *AutoSaver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation != s.savedGen
}

// Idle reports whether nothing has been pending or in flight for at least d.
func (s *AutoSaver) Idle(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.saving && s.generation == s.savedGen && time.Since(s.settledAt) >= d
}

// State returns a copy of the edits not saved yet.
func (s *AutoSaver) State() map[int]academic.RawState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *AutoSaver) snapshotLocked() map[int]academic.RawState {
	snap := make(map[int]academic.RawState, len(s.state))
	for id, raw := range s.state {
		snap[id] = raw
	}
	return snap
}

// startLocked marks a save of the current state as in flight.
func (s *AutoSaver) startLocked() (map[int]academic.RawState, uint64) {
	s.saving = true
	s.done = make(chan struct{})
	s.status = StatusSaving
	return s.snapshotLocked(), s.generation
}

// finish settles a save of generation gen. When newer edits arrived meanwhile
// it starts the follow-up save and returns its snapshot.
func (s *AutoSaver) finish(gen uint64, err error) (map[int]academic.RawState, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saving = false
	close(s.done)
	if err == nil && gen > s.savedGen {
		s.savedGen = gen
	}
	if s.generation > gen && !s.closed {
		snap, next := s.startLocked()
		return snap, next, true
	}
	if err != nil {
		s.status = StatusError
		s.lastErr = err
	} else {
		s.status = StatusSaved
		s.lastErr = nil
		if s.generation == s.savedGen {
			s.state = make(map[int]academic.RawState)
			s.settledAt = time.Now()
		}
	}
	return nil, 0, false
}

func (s *AutoSaver) run(ctx context.Context, snap map[int]academic.RawState, gen uint64) error {
	for {
		err := s.save(ctx, snap)
		if err != nil {
			s.logger.Error(fmt.Sprintf("auto saving grades: %v", err), err)
		}
		var more bool
		if snap, gen, more = s.finish(gen, err); !more {
			return err
		}
	}
}

func (s *AutoSaver) fire() {
	s.mu.Lock()
	if s.closed || s.saving || s.generation == s.savedGen {
		s.mu.Unlock()
		return
	}
	snap, gen := s.startLocked()
	s.mu.Unlock()

	_ = s.run(context.Background(), snap, gen)
}

// Flush saves pending edits now and waits for every in-flight save to settle.
func (s *AutoSaver) Flush(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.saving {
			done := s.done
			s.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if s.generation == s.savedGen {
			s.mu.Unlock()
			return nil
		}
		snap, gen := s.startLocked()
		s.mu.Unlock()

		return s.run(ctx, snap, gen)
	}
}

// Close stops the timer. Edits after Close are ignored and pending ones are not saved.
func (s *AutoSaver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
