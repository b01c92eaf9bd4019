// Package session implements the typing session state machine.
package session

import (
	"context"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// InputBuffer is how many characters may be typed past the end of the target.
const InputBuffer = 5

// KeyBackspace is the key identifier that removes the last typed character.
const KeyBackspace = "Backspace"

// State is the phase of a session.
type State int

const (
	// StateIdle waits for the first printable key.
	StateIdle State = iota
	// StateRunning accepts input and advances the clock.
	StateRunning
	// StateComplete ignores input until reset.
	StateComplete
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// TextSource produces practice text for a character set.
type TextSource interface {
	Generate(cs model.CharacterSet) (string, error)
}

// RecordSink persists completed sessions.
type RecordSink interface {
	Records() []model.Record
	Save(ctx context.Context, elapsedSeconds, mistakes int, charSetID string) []model.Record
	Clear(ctx context.Context) error
}

// Snapshot is the read-only state exposed for rendering.
type Snapshot struct {
	CharSet        model.CharacterSet
	Target         string
	Input          string
	StartedAt      time.Time
	ElapsedSeconds int
	Mistakes       int
	State          State
	Records        []model.Record
	// Generation identifies the current clock subscription. Ticks carrying
	// an older generation are ignored.
	Generation uint64
}

// Engine drives one practice attempt at a time. It is not safe for
// concurrent use; callers deliver key events and ticks from one goroutine.
type Engine struct {
	text    TextSource
	records RecordSink
	now     func() time.Time

	charSet  model.CharacterSet
	target   string
	expected []rune

	input      []rune
	startedAt  time.Time
	elapsed    int
	mistakes   int
	state      State
	generation uint64
	recs       []model.Record

	listeners map[int]func(Snapshot)
	nextID    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the start-time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New builds an engine with freshly generated text for cs.
func New(text TextSource, records RecordSink, cs model.CharacterSet, opts ...Option) (*Engine, error) {
	e := &Engine{
		text:      text,
		records:   records,
		now:       time.Now,
		listeners: map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(e)
	}
	target, err := text.Generate(cs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate practice text: %w", err)
	}
	e.charSet = cs
	e.setTarget(target)
	e.recs = records.Records()
	return e, nil
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	recs := make([]model.Record, len(e.recs))
	copy(recs, e.recs)
	return Snapshot{
		CharSet:        e.charSet,
		Target:         e.target,
		Input:          string(e.input),
		StartedAt:      e.startedAt,
		ElapsedSeconds: e.elapsed,
		Mistakes:       e.mistakes,
		State:          e.state,
		Records:        recs,
		Generation:     e.generation,
	}
}

// State returns the current phase.
func (e *Engine) State() State {
	return e.state
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		delete(e.listeners, id)
	}
}

// HandleKey applies one key event. key is KeyBackspace or a single
// character; anything else is ignored.
func (e *Engine) HandleKey(ctx context.Context, key string) Snapshot {
	if e.state == StateComplete {
		return e.Snapshot()
	}
	if key == KeyBackspace {
		if len(e.input) == 0 {
			return e.Snapshot()
		}
		e.input = e.input[:len(e.input)-1]
		return e.changed()
	}
	r, ok := printable(key)
	if !ok {
		return e.Snapshot()
	}
	if len(e.input) >= len(e.expected)+InputBuffer {
		return e.Snapshot()
	}
	if e.state == StateIdle {
		e.state = StateRunning
		e.startedAt = e.now()
		e.generation++
	}

	pos := len(e.input)
	if pos >= len(e.expected) || e.expected[pos] != r {
		e.mistakes++
	}
	e.input = append(e.input, r)

	if len(e.input) == len(e.expected) && string(e.input) == string(e.expected) {
		e.state = StateComplete
		e.generation++
		e.recs = e.records.Save(ctx, e.elapsed, e.mistakes, e.charSet.ID)
	}
	return e.changed()
}

// Tick advances the clock by one second if generation is current and the
// session is running. It reports whether the tick applied, in which case
// the caller should schedule the next one.
func (e *Engine) Tick(generation uint64) bool {
	if e.state != StateRunning || generation != e.generation {
		return false
	}
	e.elapsed++
	e.changed()
	return true
}

// Reset discards the current attempt and generates new text for the
// active character set.
func (e *Engine) Reset() error {
	e.clearSession()
	target, err := e.text.Generate(e.charSet)
	if err != nil {
		e.changed()
		return fmt.Errorf("failed to generate practice text: %w", err)
	}
	e.setTarget(target)
	e.changed()
	return nil
}

// ChangeTarget switches to cs and starts a fresh attempt. On error nothing
// changes.
func (e *Engine) ChangeTarget(cs model.CharacterSet) error {
	target, err := e.text.Generate(cs)
	if err != nil {
		return fmt.Errorf("failed to generate practice text: %w", err)
	}
	e.clearSession()
	e.charSet = cs
	e.setTarget(target)
	e.changed()
	return nil
}

// ClearRecords erases every stored record.
func (e *Engine) ClearRecords(ctx context.Context) error {
	err := e.records.Clear(ctx)
	e.recs = e.records.Records()
	e.changed()
	return err
}

func (e *Engine) clearSession() {
	if e.state == StateRunning {
		e.generation++
	}
	e.input = nil
	e.startedAt = time.Time{}
	e.elapsed = 0
	e.mistakes = 0
	e.state = StateIdle
}

// setTarget stores the text and its typing form, where line breaks are
// typed as spaces.
func (e *Engine) setTarget(target string) {
	e.target = target
	e.expected = []rune(target)
	for i, r := range e.expected {
		if r == '\n' {
			e.expected[i] = ' '
		}
	}
}

func (e *Engine) changed() Snapshot {
	snap := e.Snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}
	return snap
}

func printable(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
