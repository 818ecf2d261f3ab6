// Package wizard implements the multi-step intake form state machine:
// an ordered sequence of steps, each owning a fixed field set, with
// validation-gated forward transitions and a submit-on-last-step handoff
// to the submission pipeline.
package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/echologistics/carrier-intake/internal/validate"
)

// Step phases.
const (
	PhaseEditing    = "editing"
	PhaseSubmitting = "submitting"
	PhaseCompleted  = "completed"
)

// Steps is the ordered step layout of the intake form. Each step names
// the fields it owns for merge and validation purposes.
var Steps = []struct {
	Name   string
	Fields []string
}{
	{"Step 1", []string{"dispatchCompany"}},
	{"Step 2", []string{
		"carrierFullName", "companyName", "mcNumber", "dotNumber", "phoneNumber",
		"dedicatedLaneSetup", "twicCardApplication", "trailerRental",
		"factoringSetup", "insuranceAssistance",
	}},
	{"Step 3", []string{"paymentMethod"}},
	{"Final Submission", []string{
		"signature", "printName", "date", "email", "agreedToTerms",
		"howYouGetPaid", "bankName", "accountNumber", "routingNumber",
	}},
}

var (
	// ErrSubmitInFlight is returned for any transition attempted while a
	// submission is in flight. This is what makes a rapid double Next on
	// the last step persist exactly one record.
	ErrSubmitInFlight = errors.New("wizard: submission in flight")

	// ErrCompleted is returned for Next/Back after successful submission.
	// Only Reset leaves the completed state.
	ErrCompleted = errors.New("wizard: already completed")
)

// Submitter is the submission pipeline as seen by the machine.
type Submitter interface {
	Submit(ctx context.Context, draft *Draft) (trackingID string, err error)
}

// Machine drives one user's pass through the intake form. All methods
// are safe for concurrent use; at most one transition runs at a time.
type Machine struct {
	validator *validate.Validator
	submitter Submitter

	mu      sync.Mutex
	step    int
	phase   string
	draft   *Draft
	result  *Result
	lastErr string
}

// Result holds what the completed state echoes back for display.
type Result struct {
	TrackingID string `json:"trackingId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// Snapshot is the externally visible machine state after a transition.
type Snapshot struct {
	Step        int                    `json:"step"`
	StepName    string                 `json:"stepName"`
	Phase       string                 `json:"phase"`
	Draft       Draft                  `json:"draft"`
	FieldErrors []validate.FieldError  `json:"fieldErrors,omitempty"`
	SubmitError string                 `json:"submitError,omitempty"`
	Result      *Result                `json:"result,omitempty"`
}

func New(v *validate.Validator, s Submitter) *Machine {
	return &Machine{
		validator: v,
		submitter: s,
		phase:     PhaseEditing,
		draft:     NewDraft(),
	}
}

func (m *Machine) snapshotLocked() *Snapshot {
	return &Snapshot{
		Step:        m.step,
		StepName:    Steps[m.step].Name,
		Phase:       m.phase,
		Draft:       *m.draft,
		SubmitError: m.lastErr,
		Result:      m.result,
	}
}

// Snapshot returns the current state without transitioning.
func (m *Machine) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Next merges patch's current-step fields into the draft, validates the
// step-scoped subset, and on success advances one step. On the last step
// it instead hands the accumulated draft to the submission pipeline.
// Validation failures are reported in the snapshot, not as an error.
func (m *Machine) Next(ctx context.Context, patch *Draft) (*Snapshot, error) {
	m.mu.Lock()
	switch m.phase {
	case PhaseSubmitting:
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	case PhaseCompleted:
		m.mu.Unlock()
		return nil, ErrCompleted
	}

	step := Steps[m.step]
	if patch != nil {
		m.draft.Merge(patch, step.Fields)
	}

	if errs := m.validator.Check(m.draft, step.Fields); len(errs) > 0 {
		snap := m.snapshotLocked()
		snap.FieldErrors = errs
		m.mu.Unlock()
		return snap, nil
	}

	if m.step < len(Steps)-1 {
		m.step++
		m.lastErr = ""
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, nil
	}

	// Last step: submit. The lock is released while the pipeline runs;
	// the submitting phase blocks re-entrant transitions meanwhile.
	m.phase = PhaseSubmitting
	m.lastErr = ""
	draft := m.draft
	m.mu.Unlock()

	trackingID, err := m.submitter.Submit(ctx, draft)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		// Back to the last editable step, draft preserved for retry.
		m.phase = PhaseEditing
		m.lastErr = err.Error()
		snap := m.snapshotLocked()
		if fe, ok := err.(fieldErrorer); ok {
			snap.FieldErrors = fe.FieldErrors()
		}
		return snap, nil
	}
	m.phase = PhaseCompleted
	m.result = &Result{TrackingID: trackingID, Email: draft.Email, Name: draft.CarrierFullName}
	m.draft = NewDraft()
	return m.snapshotLocked(), nil
}

// fieldErrorer is implemented by pipeline validation errors so their
// field scoping survives the trip back into the snapshot.
type fieldErrorer interface {
	FieldErrors() []validate.FieldError
}

// Back decrements the step, floor 0. It never validates and never
// touches field values in any step.
func (m *Machine) Back() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case PhaseSubmitting:
		return nil, ErrSubmitInFlight
	case PhaseCompleted:
		return nil, ErrCompleted
	}
	if m.step > 0 {
		m.step--
	}
	return m.snapshotLocked(), nil
}

// Reset discards the draft from any state and returns to step 0.
func (m *Machine) Reset() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSubmitting {
		return nil, ErrSubmitInFlight
	}
	m.step = 0
	m.phase = PhaseEditing
	m.draft = NewDraft()
	m.result = nil
	m.lastErr = ""
	return m.snapshotLocked(), nil
}
