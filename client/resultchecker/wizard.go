package resultchecker

import (
	"context"
	"errors"
	"strings"
)

// Step is an explicit wizard state.
type Step int

const (
	StepInput Step = iota
	StepSession
	StepTerm
	StepSubmit
	StepResults
)

// Field names a user-facing input that can carry a validation error.
type Field string

const (
	FieldRegNumber Field = "regNumber"
	FieldSession   Field = "session"
	FieldTerm      Field = "term"
	FieldPin       Field = "pin"
	FieldSerial    Field = "serial"
)

// ErrGeneric is surfaced when the provider's error does not match any
// field-specific pattern.
var ErrGeneric = errors.New("something went wrong, please try again")

// API is the backend surface the wizard depends on.
type API interface {
	ValidateStudent(ctx context.Context, regNumber string) (*StudentInfo, error)
	Sessions(ctx context.Context, schoolID string) ([]Session, error)
	Terms(ctx context.Context, sessionID string) ([]Term, error)
	Verify(ctx context.Context, input VerifyInput) (string, error)
	ReportSheet(ctx context.Context, token, termID string) (*Report, error)
}

// Wizard drives the five-step result-checker flow.
type Wizard struct {
	api   API
	store *ReportStore

	step      Step
	regNumber string
	validated bool
	student   *StudentInfo
	schoolID  string
	sessions  []Session
	terms     []Term
	sessionID string
	termID    string
	pin       string
	serial    string

	fieldErrors map[Field]string
	report      *Report
}

// NewWizard creates a wizard. When a store holds a report younger than the
// freshness window, the wizard restores directly to the results step.
func NewWizard(api API, store *ReportStore) *Wizard {
	w := &Wizard{
		api:         api,
		store:       store,
		step:        StepInput,
		fieldErrors: map[Field]string{},
	}
	if store != nil {
		if report, ok := store.Load(); ok {
			w.report = report
			w.step = StepResults
		}
	}
	return w
}

func (w *Wizard) Step() Step                    { return w.step }
func (w *Wizard) Report() *Report               { return w.report }
func (w *Wizard) Student() *StudentInfo         { return w.student }
func (w *Wizard) Sessions() []Session           { return w.sessions }
func (w *Wizard) Terms() []Term                 { return w.terms }
func (w *Wizard) Validated() bool               { return w.validated }
func (w *Wizard) FieldErrors() map[Field]string { return w.fieldErrors }

// SetRegNumber records the registration number. Changing it invalidates
// everything derived from the previous validation.
func (w *Wizard) SetRegNumber(regNumber string) {
	regNumber = strings.TrimSpace(regNumber)
	if regNumber == w.regNumber {
		return
	}
	w.regNumber = regNumber
	w.validated = false
	w.student = nil
	w.schoolID = ""
	w.sessions = nil
	w.terms = nil
	w.sessionID = ""
	w.termID = ""
	w.step = StepInput
	delete(w.fieldErrors, FieldRegNumber)
}

// Validate resolves the registration number. It is a no-op once the
// current number has validated successfully.
func (w *Wizard) Validate(ctx context.Context) error {
	if w.validated {
		return nil
	}
	if w.regNumber == "" {
		w.fieldErrors[FieldRegNumber] = "registration number is required"
		return errors.New(w.fieldErrors[FieldRegNumber])
	}

	student, err := w.api.ValidateStudent(ctx, w.regNumber)
	if err != nil {
		w.fieldErrors[FieldRegNumber] = err.Error()
		return err
	}

	w.student = student
	w.schoolID = student.SchoolID
	w.validated = true
	delete(w.fieldErrors, FieldRegNumber)
	return nil
}

// Confirm accepts the resolved student and loads the school's sessions.
func (w *Wizard) Confirm(ctx context.Context) error {
	if !w.validated {
		return errors.New("student has not been validated")
	}

	sessions, err := w.api.Sessions(ctx, w.schoolID)
	if err != nil {
		return w.classify(err)
	}
	w.sessions = sessions
	w.step = StepSession
	return nil
}

// SelectSession picks a session and loads its terms. Changing the session
// discards any previous term choice.
func (w *Wizard) SelectSession(ctx context.Context, sessionID string) error {
	if w.step < StepSession {
		return errors.New("session selection is not available yet")
	}
	if !w.hasSession(sessionID) {
		w.fieldErrors[FieldSession] = "please choose a valid session"
		return errors.New(w.fieldErrors[FieldSession])
	}

	terms, err := w.api.Terms(ctx, sessionID)
	if err != nil {
		w.fieldErrors[FieldSession] = err.Error()
		return err
	}

	w.sessionID = sessionID
	w.terms = terms
	w.termID = ""
	w.step = StepTerm
	delete(w.fieldErrors, FieldSession)
	delete(w.fieldErrors, FieldTerm)
	return nil
}

// SelectTerm picks a term within the chosen session.
func (w *Wizard) SelectTerm(termID string) error {
	if w.step < StepTerm {
		return errors.New("term selection is not available yet")
	}
	if !w.hasTerm(termID) {
		w.fieldErrors[FieldTerm] = "please choose a valid term"
		return errors.New(w.fieldErrors[FieldTerm])
	}

	w.termID = termID
	w.step = StepSubmit
	delete(w.fieldErrors, FieldTerm)
	return nil
}

// SetCard records the scratch-card pin and serial.
func (w *Wizard) SetCard(pin, serial string) {
	w.pin = strings.TrimSpace(pin)
	w.serial = strings.TrimSpace(serial)
}

// Submit verifies the scratch card and retrieves the report sheet. On
// success the report is persisted and the wizard moves to results.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step < StepSubmit {
		return errors.New("the wizard is not ready to submit")
	}
	if w.pin == "" || w.serial == "" {
		// The provider validates pin and serial as a pair, so an error on
		// one marks both.
		w.fieldErrors[FieldPin] = "pin and serial are required"
		w.fieldErrors[FieldSerial] = "pin and serial are required"
		return errors.New("pin and serial are required")
	}

	token, err := w.api.Verify(ctx, VerifyInput{
		Pin:      w.pin,
		Serial:   w.serial,
		TermID:   w.termID,
		Session:  w.sessionID,
		RegNum:   w.regNumber,
		SchoolID: w.schoolID,
	})
	if err != nil {
		return w.classify(err)
	}

	report, err := w.api.ReportSheet(ctx, token, w.termID)
	if err != nil {
		return w.classify(err)
	}
	if !report.Complete() {
		return ErrIncompleteReport
	}

	w.report = report
	w.step = StepResults
	delete(w.fieldErrors, FieldPin)
	delete(w.fieldErrors, FieldSerial)

	if w.store != nil {
		_ = w.store.Save(report)
	}
	return nil
}

// Back leaves the results step, clears the persisted report, and resets
// the wizard to a blank first step.
func (w *Wizard) Back() {
	if w.store != nil {
		_ = w.store.Clear()
	}
	w.step = StepInput
	w.regNumber = ""
	w.validated = false
	w.student = nil
	w.schoolID = ""
	w.sessions = nil
	w.terms = nil
	w.sessionID = ""
	w.termID = ""
	w.pin = ""
	w.serial = ""
	w.report = nil
	w.fieldErrors = map[Field]string{}
}

// classify maps a provider error onto field errors where the message
// matches a known pattern, otherwise falls back to the generic error.
func (w *Wizard) classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "pin") || strings.Contains(msg, "serial") || strings.Contains(msg, "card"):
		w.fieldErrors[FieldPin] = err.Error()
		w.fieldErrors[FieldSerial] = err.Error()
		return err
	case strings.Contains(msg, "registration") || strings.Contains(msg, "reg number"):
		w.fieldErrors[FieldRegNumber] = err.Error()
		return err
	case strings.Contains(msg, "session"):
		w.fieldErrors[FieldSession] = err.Error()
		return err
	case strings.Contains(msg, "term"):
		w.fieldErrors[FieldTerm] = err.Error()
		return err
	default:
		return ErrGeneric
	}
}

func (w *Wizard) hasSession(id string) bool {
	for _, s := range w.sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (w *Wizard) hasTerm(id string) bool {
	for _, t := range w.terms {
		if t.ID == id {
			return true
		}
	}
	return false
}
