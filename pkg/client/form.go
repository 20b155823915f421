package client

import (
	"context"
	"errors"
	"sync"

	"github.com/portfolio/backend/pkg/contract"
)

// State is the lifecycle of one form submission.
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

const (
	labelIdle    = "Send Message"
	labelPending = "Sending..."

	// GenericError is shown when a failure cannot be attributed to a field.
	GenericError = "Something went wrong. Please try again later."
)

// ErrSubmitInFlight is returned by Form.Submit while a request is pending.
var ErrSubmitInFlight = errors.New("submit already in flight")

// Submitter sends a contact input; *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, in contract.ContactInput) (*contract.SuccessResponse, error)
}

// Form holds the contact form values and tracks the submission state.
// It is safe for concurrent use.
type Form struct {
	mu          sync.Mutex
	submitter   Submitter
	values      contract.ContactInput
	state       State
	fieldErrors map[string]string
	err         string
	notice      string
}

// NewForm creates an idle, empty form.
func NewForm(s Submitter) *Form {
	return &Form{submitter: s, fieldErrors: map[string]string{}}
}

// Set replaces the field values and clears the errors for changed fields.
func (f *Form) Set(in contract.ContactInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name != f.values.Name {
		delete(f.fieldErrors, "name")
	}
	if in.Email != f.values.Email {
		delete(f.fieldErrors, "email")
	}
	if in.Message != f.values.Message {
		delete(f.fieldErrors, "message")
	}
	f.values = in
}

// Values returns the current field values.
func (f *Form) Values() contract.ContactInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	return f.State() != StatePending
}

// SubmitLabel is the submit button text for the current state.
func (f *Form) SubmitLabel() string {
	if f.State() == StatePending {
		return labelPending
	}
	return labelIdle
}

// FieldErrors returns a copy of the per-field error messages.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// ErrorMessage returns the form-level error message, if any.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Notice returns the confirmation message of the last successful submit.
func (f *Form) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Submit validates the current values and, if they pass, sends them. On
// success the values are cleared. Errors are reflected in FieldErrors and
// ErrorMessage as well as returned.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StatePending {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	in := f.values
	in.Normalize()
	f.fieldErrors = map[string]string{}
	f.err, f.notice = "", ""
	if ferr := contract.Validate(in); ferr != nil {
		f.fieldErrors[ferr.Field] = ferr.Message
		f.state = StateResolved
		f.mu.Unlock()
		return ferr
	}
	f.state = StatePending
	f.mu.Unlock()

	resp, err := f.submitter.Submit(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateResolved
	if err != nil {
		f.applyError(err)
		return err
	}
	f.values = contract.ContactInput{}
	if resp != nil {
		f.notice = resp.Message
	}
	return nil
}

func (f *Form) applyError(err error) {
	var respErr *ResponseError
	var ferr *contract.FieldError
	switch {
	case errors.As(err, &respErr) && respErr.Field != "":
		f.fieldErrors[respErr.Field] = respErr.Message
	case errors.As(err, &ferr) && ferr.Field != "":
		f.fieldErrors[ferr.Field] = ferr.Message
	default:
		f.err = GenericError
	}
}
