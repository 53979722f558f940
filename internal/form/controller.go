package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/app/schemas"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

// DefaultToastDuration is how long a toast stays up unless configured otherwise
const DefaultToastDuration = 6 * time.Second

const fallbackErrorMessage = "An unexpected error occurred. Please try again."

var (
	// ErrInvalidForm is returned by Submit when client-side validation fails.
	// The per-field messages are in Errors().
	ErrInvalidForm = errors.New("form has invalid fields")
	// ErrSubmitInProgress is returned when Submit is called during a submission
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrUnknownField is returned by HandleChange for names outside Fields
	ErrUnknownField = errors.New("unknown form field")
)

// State is the submission lifecycle
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// StudentCreator is the API call the form submits to.
// *client.Client satisfies it.
type StudentCreator interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
}

// Snapshot is a consistent copy of the controller state for rendering
type Snapshot struct {
	State    State
	Values   Values
	Errors   map[string]string
	Toast    Toast
	ResetKey int
}

// Controller drives the registration form: field values, client-side
// validation, submission and the notification toast. It is safe for
// concurrent use and allows one submission at a time.
type Controller struct {
	api           StudentCreator
	toastDuration time.Duration
	observer      func(State)
	logger        zerolog.Logger

	mu       sync.Mutex
	values   Values
	errors   map[string]string
	state    State
	toast    Toast
	toastGen uint64
	timer    *time.Timer
	resetKey int
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithToastDuration sets how long toasts stay visible; 0 keeps them until
// hidden explicitly.
func WithToastDuration(d time.Duration) ControllerOption {
	return func(c *Controller) { c.toastDuration = d }
}

// WithStateObserver is called on every state transition while the
// controller lock is held; it must not call back into the controller.
func WithStateObserver(fn func(State)) ControllerOption {
	return func(c *Controller) { c.observer = fn }
}

// WithLogger sets the logger used for submission outcomes
func WithLogger(lgr zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = lgr }
}

// NewController creates a form in its initial state
func NewController(api StudentCreator, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:           api,
		toastDuration: DefaultToastDuration,
		logger:        zerolog.Nop(),
		values:        InitialValues(),
		errors:        map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleChange sets a field and clears any error shown for it
func (c *Controller) HandleChange(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.values.field(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	delete(c.errors, name)
	return nil
}

// HandleSelectChange sets a single-select field to the first selected value,
// or clears it when nothing is selected.
func (c *Controller) HandleSelectChange(name string, selected ...string) error {
	value := ""
	if len(selected) > 0 {
		value = selected[0]
	}
	return c.HandleChange(name, value)
}

// Validate runs the shared student schema over the current values, replaces
// the error map with the result and reports whether the form is valid.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked(c.values.Request()) == nil
}

func (c *Controller) validateLocked(req dto.CreateStudentRequest) error {
	c.errors = map[string]string{}
	_, err := schemas.Student().Parse(req.ToModel())
	if err == nil {
		return nil
	}
	if verr, ok := apperrors.AsValidationError(err); ok {
		for _, f := range verr.Fields {
			key := flattenField(f.Field)
			if _, seen := c.errors[key]; !seen {
				c.errors[key] = f.Message
			}
		}
	}
	return err
}

// Submit validates and, when valid, sends the registration. On success the
// form is cleared and a success toast shown; on API failure the values are
// kept and an error toast shown. Invalid input never reaches the API.
func (c *Controller) Submit(ctx context.Context) (*models.Student, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	c.hideToastLocked()

	req := c.values.Request()
	if err := c.validateLocked(req); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	c.setStateLocked(StateSubmitting)
	c.mu.Unlock()

	created, err := c.api.CreateStudent(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setStateLocked(StateSubmitted)

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackErrorMessage
		}
		c.logger.Warn().Err(err).Msg("Student registration failed")
		c.showToastLocked(ToastError, msg)
		c.setStateLocked(StateIdle)
		return nil, err
	}

	c.logger.Info().Str("studentId", req.StudentID).Msg("Student registered")
	c.resetLocked()
	name := req.FirstName + " " + req.LastName
	if created != nil && created.FirstName != "" {
		name = created.FullName()
	}
	c.showToastLocked(ToastSuccess, fmt.Sprintf("Student \"%s\" has been registered successfully!", name))
	c.setStateLocked(StateIdle)
	return created, nil
}

// Reset clears values, errors and the toast, and bumps the reset key so
// views holding their own input state rebuild.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideToastLocked()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.values = InitialValues()
	c.errors = map[string]string{}
	c.resetKey++
}

// CanReset is false while a submission is in flight
func (c *Controller) CanReset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != StateSubmitting
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Values returns a copy of the entered values
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Errors returns a copy of the per-field error map
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errors)
}

// ResetKey changes every time the form is cleared
func (c *Controller) ResetKey() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetKey
}

// Snapshot returns the whole state at once
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:    c.state,
		Values:   c.values,
		Errors:   copyErrors(c.errors),
		Toast:    c.toast,
		ResetKey: c.resetKey,
	}
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	if c.observer != nil {
		c.observer(s)
	}
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
