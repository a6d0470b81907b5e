// Package form implements the submission side of the contact pipeline: a
// form controller owning input state and a small finite state machine
// (idle, submitting, success, error). It performs the same validation as
// the server before issuing a single POST, maps the response onto a state,
// and surfaces messages both inline (field-keyed) and through a toast
// Notifier.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio-backend/pkg/validation"
)

// State is the controller's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Level classifies a toast notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives transient toast notifications, independent of the
// inline form messages.
type Notifier interface {
	Notify(message string, level Level)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, level Level)

func (f NotifierFunc) Notify(message string, level Level) { f(message, level) }

// Fields holds the form's input values.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

const (
	defaultResetDelay    = 5 * time.Second
	validationResetDelay = 3 * time.Second

	genericFailureMessage = "Failed to send message. Please try again later."
	successMessage        = "Message sent successfully! I'll get back to you soon."
)

// Controller drives one contact form instance. Methods are safe for
// concurrent use, though a form normally has a single driver.
type Controller struct {
	endpoint   string
	client     *http.Client
	notifier   Notifier
	resetDelay time.Duration
	schedule   func(d time.Duration, fn func())

	mu     sync.Mutex
	state  State
	seq    uint64 // bumped on every transition; stale reset timers no-op
	fields Fields
	errs   map[string]string
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient overrides the HTTP client used for submission.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithNotifier sets the toast notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithResetDelay overrides how long a terminal state is shown before the
// form returns to idle.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithScheduler replaces the timer used for the auto-return to idle, so
// tests can fire it deterministically.
func WithScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(c *Controller) { c.schedule = schedule }
}

// New creates a controller posting to endpoint.
func New(endpoint string, opts ...Option) *Controller {
	c := &Controller{
		endpoint:   endpoint,
		client:     http.DefaultClient,
		resetDelay: defaultResetDelay,
		errs:       make(map[string]string),
	}
	c.schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one input value and clears that field's error, matching
// the clear-on-edit behavior users expect.
func (c *Controller) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case "name":
		c.fields.Name = value
	case "email":
		c.fields.Email = value
	case "subject":
		c.fields.Subject = value
	case "message":
		c.fields.Message = value
	default:
		return
	}
	delete(c.errs, name)
}

// Fields returns a snapshot of the current input values.
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns a copy of the field-keyed error map. The key "submit"
// carries submission-level failures.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// Submit validates locally and, if valid, issues one request to the
// endpoint. It returns the resulting state. While a submission is in
// flight further Submit calls are ignored; no automatic retries happen.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return StateSubmitting
	}

	c.errs = make(map[string]string)
	if strings.TrimSpace(c.fields.Name) == "" {
		c.errs["name"] = "Name is required"
	}
	if strings.TrimSpace(c.fields.Email) == "" {
		c.errs["email"] = "Email is required"
	} else if !validation.ValidEmail(c.fields.Email) {
		c.errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(c.fields.Message) == "" {
		c.errs["message"] = "Message is required"
	}
	if len(c.errs) > 0 {
		// Invalid input never reaches the network.
		c.transition(StateError)
		c.scheduleReset(validationResetDelay)
		c.mu.Unlock()
		return StateError
	}

	payload := c.fields
	c.transition(StateSubmitting)
	c.mu.Unlock()

	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(genericFailureMessage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(genericFailureMessage)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// No response at all (network failure, timeout, cancellation).
		return c.fail(genericFailureMessage)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&result)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return c.succeed()
	case resp.StatusCode == http.StatusTooManyRequests:
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			return c.fail(fmt.Sprintf("Too many requests. Please try again in %s seconds.", retryAfter))
		}
		if result.Error != "" {
			return c.fail(result.Error)
		}
		return c.fail("Too many requests. Please try again in a few minutes.")
	default:
		if result.Error != "" {
			return c.fail(result.Error)
		}
		return c.fail(genericFailureMessage)
	}
}

func (c *Controller) succeed() State {
	c.mu.Lock()
	c.fields = Fields{}
	c.errs = make(map[string]string)
	c.transition(StateSuccess)
	c.scheduleReset(c.resetDelay)
	c.mu.Unlock()

	c.notify(successMessage, LevelSuccess)
	return StateSuccess
}

func (c *Controller) fail(message string) State {
	c.mu.Lock()
	c.errs["submit"] = message
	c.transition(StateError)
	c.scheduleReset(c.resetDelay)
	c.mu.Unlock()

	c.notify(message, LevelError)
	return StateError
}

func (c *Controller) notify(message string, level Level) {
	if c.notifier != nil {
		c.notifier.Notify(message, level)
	}
}

// transition sets the state. Caller must hold c.mu.
func (c *Controller) transition(s State) {
	c.state = s
	c.seq++
}

// scheduleReset arms the auto-return to idle. A later transition
// invalidates the pending reset. Caller must hold c.mu.
func (c *Controller) scheduleReset(d time.Duration) {
	seq := c.seq
	c.schedule(d, func() {
		c.mu.Lock()
		if c.seq == seq {
			c.transition(StateIdle)
		}
		c.mu.Unlock()
	})
}
