// Package session holds one game of building an atom: the element, the mode,
// the fill state, the placement history and the score tracker. It is the
// explicit context the UI passes around instead of a global store.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
	"github.com/f3rmion/orbital/internal/score"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")

	ErrUnknownElement = elements.ErrUnknownElement
	ErrUnknownOrbital = orbital.ErrUnknownOrbital
	ErrComplete       = orbital.ErrComplete
)

// Outcome is the result of one placement attempt.
type Outcome struct {
	Placement orbital.Placement `json:"placement"`
	Verdict   orbital.Verdict   `json:"verdict"`
	Delta     score.Delta       `json:"delta"`
	// Completed is set on the placement that first finishes the atom in
	// the current attempt. Finishing again after an undo does not set it.
	Completed bool `json:"completed"`
	Hinted    bool `json:"hinted,omitempty"`
}

// Session is a single game on one element.
type Session struct {
	ID      string
	Element elements.Element
	Mode    orbital.Mode
	State   *orbital.FillState
	Score   *score.Tracker

	history  []orbital.Placement
	baseline score.Tracker
	// finished latches once the current attempt has completed.
	finished bool
}

// New starts a session for atomic number z.
func New(z int, mode orbital.Mode) (*Session, error) {
	return NewWithTracker(z, mode, score.New(score.StartRating))
}

// NewWithTracker starts a session that scores into an existing tracker, so
// rating carries across atoms.
func NewWithTracker(z int, mode orbital.Mode, tracker *score.Tracker) (*Session, error) {
	el, err := elements.Lookup(z)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       uuid.NewString(),
		Element:  el,
		Mode:     mode,
		State:    orbital.NewFillState(z),
		Score:    tracker,
		baseline: *tracker,
	}, nil
}

// Check validates a placement without applying or scoring it.
func (s *Session) Check(id orbital.ID, spin orbital.Spin) (orbital.Verdict, error) {
	if s.State.Complete() {
		return orbital.Verdict{}, ErrComplete
	}
	if !s.State.Has(id) {
		return orbital.Verdict{}, fmt.Errorf("%s: %w", id, ErrUnknownOrbital)
	}
	return orbital.Validate(s.State, id, spin, s.Mode), nil
}

// Place validates, scores and, if accepted, applies a placement.
func (s *Session) Place(id orbital.ID, spin orbital.Spin) (Outcome, error) {
	v, err := s.Check(id, spin)
	if err != nil {
		return Outcome{}, err
	}
	p := orbital.Placement{Orbital: id, Spin: spin}
	out := Outcome{Placement: p, Verdict: v}
	out.Delta = s.Score.Record(v, s.Mode, s.Element.Z)
	if !v.Accepted {
		return out, nil
	}
	if err := s.apply(p); err != nil {
		return out, err
	}
	out.Completed = s.markFinished()
	return out, nil
}

// Hint returns the next canonical placement without applying it.
func (s *Session) Hint() (orbital.Placement, bool) {
	return orbital.NextCorrectPlacement(s.State)
}

// Reveal applies the next canonical placement, charging for the hint.
func (s *Session) Reveal() (Outcome, error) {
	p, ok := s.Hint()
	if !ok {
		return Outcome{}, ErrComplete
	}
	out := Outcome{
		Placement: p,
		Verdict:   orbital.Validate(s.State, p.Orbital, p.Spin, s.Mode),
		Delta:     s.Score.RecordHint(s.Mode),
		Hinted:    true,
	}
	if err := s.apply(p); err != nil {
		return out, err
	}
	out.Completed = s.markFinished()
	return out, nil
}

// markFinished reports whether the attempt has just completed for the
// first time.
func (s *Session) markFinished() bool {
	if !s.State.Complete() || s.finished {
		return false
	}
	s.finished = true
	return true
}

// Undo removes the last placement by replaying the history without it.
// Score is not refunded, and a completed attempt stays completed.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	replay := s.history[:len(s.history)-1]
	s.State = orbital.NewFillState(s.Element.Z)
	s.history = nil
	for _, p := range replay {
		if err := s.apply(p); err != nil {
			return fmt.Errorf("replaying %s: %w", p, err)
		}
	}
	return nil
}

// Reset clears every placement and starts a fresh attempt. The tracker
// keeps its totals.
func (s *Session) Reset() {
	s.State = orbital.NewFillState(s.Element.Z)
	s.history = nil
	s.baseline = *s.Score
	s.finished = false
}

// Result is the tally of the current attempt on the atom. BestStreak and
// Rating are the tracker's running values, since streaks and rating carry
// across atoms.
type Result struct {
	Points     int     `json:"points"`
	Mistakes   int     `json:"mistakes"`
	Hund       int     `json:"hund"`
	Hints      int     `json:"hints"`
	BestStreak int     `json:"best_streak"`
	Stars      int     `json:"stars"`
	Rating     float64 `json:"rating"`
}

// Result returns what the current attempt has earned so far.
func (s *Session) Result() Result {
	attempt := score.Tracker{
		Mistakes: s.Score.Mistakes - s.baseline.Mistakes,
		Hints:    s.Score.Hints - s.baseline.Hints,
	}
	points := s.Score.Points - s.baseline.Points
	if points < 0 {
		points = 0
	}
	return Result{
		Points:     points,
		Mistakes:   attempt.Mistakes,
		Hund:       s.Score.Hund - s.baseline.Hund,
		Hints:      attempt.Hints,
		BestStreak: s.Score.BestStreak,
		Stars:      attempt.Stars(),
		Rating:     s.Score.Rating,
	}
}

// SetElement switches to a new atom and clears the board.
func (s *Session) SetElement(z int) error {
	el, err := elements.Lookup(z)
	if err != nil {
		return err
	}
	s.Element = el
	s.Reset()
	return nil
}

// SetMode changes how Hund violations are treated from now on.
func (s *Session) SetMode(m orbital.Mode) { s.Mode = m }

// History returns the applied placements in order.
func (s *Session) History() []orbital.Placement {
	return append([]orbital.Placement(nil), s.history...)
}

// Snapshot is a serialisable summary of the session.
type Snapshot struct {
	ID            string              `json:"id"`
	Z             int                 `json:"z"`
	Symbol        string              `json:"symbol"`
	Mode          string              `json:"mode"`
	Placed        int                 `json:"placed"`
	Total         int                 `json:"total"`
	Configuration string              `json:"configuration"`
	History       []orbital.Placement `json:"history"`
	Score         score.Tracker       `json:"score"`
}

// Snapshot captures the session for display or logging.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:            s.ID,
		Z:             s.Element.Z,
		Symbol:        s.Element.Symbol,
		Mode:          s.Mode.String(),
		Placed:        s.State.Placed(),
		Total:         s.State.Total(),
		Configuration: s.State.Configuration(),
		History:       s.History(),
		Score:         *s.Score,
	}
}

func (s *Session) apply(p orbital.Placement) error {
	if err := s.State.Apply(p); err != nil {
		return err
	}
	s.history = append(s.history, p)
	return nil
}
