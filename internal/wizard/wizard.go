// Package wizard drives the linear multi-step forms (registration,
// appointment booking, walk-in intake): one mutable field bag, a current
// step pointer, and draft persistence between requests.
package wizard

import (
	"context"
	"fmt"

	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

// Form is the field bag shared by every step of a flow.
type Form map[string]string

// Step is a named screen with the validation that gates leaving it.
type Step struct {
	Name     string
	Validate func(Form) map[string]string
}

// SubmitFunc performs the single external write at the end of a flow and
// returns the generated identifiers shown on the finish screen.
type SubmitFunc func(ctx context.Context, f Form) (map[string]string, error)

// Config wires a flow: its steps, draft store, and submission hooks.
type Config struct {
	Key   string
	Steps []Step
	Store DraftStore

	// EmailField names the form field checked for an existing account
	// before submission; empty disables the check.
	EmailField  string
	EmailExists func(ctx context.Context, email string) (bool, error)

	// CaptchaField names the form field holding the bot-verification
	// widget token; empty disables the check.
	CaptchaField string
	VerifyBot    func(ctx context.Context, token string) error

	Submit SubmitFunc
}

type Wizard struct {
	cfg      Config
	step     int // zero-based index into cfg.Steps
	form     Form
	finished bool
	result   map[string]string
}

// New loads the draft for cfg.Key, or starts at step 1 with empty fields
// when none exists.
func New(cfg Config) (*Wizard, error) {
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("wizard %q has no steps", cfg.Key)
	}
	w := &Wizard{cfg: cfg, form: Form{}}
	if cfg.Store != nil {
		d, err := cfg.Store.Load(cfg.Key)
		if err != nil {
			return nil, err
		}
		if d != nil {
			w.step = d.Step
			if w.step < 0 || w.step >= len(cfg.Steps) {
				w.step = 0
			}
			if d.Form != nil {
				w.form = d.Form
			}
		}
	}
	return w, nil
}

// Step is the 1-based step number for display.
func (w *Wizard) Step() int { return w.step + 1 }

func (w *Wizard) StepName() string { return w.cfg.Steps[w.step].Name }

func (w *Wizard) Finished() bool { return w.finished }

// Result holds the generated identifiers after a successful submission.
func (w *Wizard) Result() map[string]string { return w.result }

// Form returns a copy of the current field bag.
func (w *Wizard) Form() Form {
	out := make(Form, len(w.form))
	for k, v := range w.form {
		out[k] = v
	}
	return out
}

// Set merges submitted field values into the draft without validating.
func (w *Wizard) Set(fields Form) {
	for k, v := range fields {
		w.form[k] = v
	}
}

func (w *Wizard) save() error {
	if w.cfg.Store == nil {
		return nil
	}
	return w.cfg.Store.Save(w.cfg.Key, &Draft{Step: w.step, Form: w.form})
}

// Advance validates the current step's fields. On success it moves forward
// and persists the draft; on failure it returns the field-keyed error map
// and stays put. No network call happens on failure.
func (w *Wizard) Advance() (map[string]string, error) {
	step := w.cfg.Steps[w.step]
	if step.Validate != nil {
		if errs := step.Validate(w.form); len(errs) > 0 {
			return errs, nil
		}
	}
	if w.step < len(w.cfg.Steps)-1 {
		w.step++
	}
	return nil, w.save()
}

// Retreat moves back one step without re-validating.
func (w *Wizard) Retreat() error {
	if w.step > 0 {
		w.step--
	}
	return w.save()
}

// Reset discards the draft and returns to the first step.
func (w *Wizard) Reset() error {
	w.step = 0
	w.form = Form{}
	w.finished = false
	w.result = nil
	if w.cfg.Store == nil {
		return nil
	}
	return w.cfg.Store.Clear(w.cfg.Key)
}

// Submit runs full-form validation (every step), the email existence check,
// and the bot-verification check, then issues the single external write.
// Success clears the draft and lands on the terminal finished state; any
// failure leaves the draft untouched so the user can retry.
func (w *Wizard) Submit(ctx context.Context) (map[string]string, error) {
	errs := map[string]string{}
	for _, step := range w.cfg.Steps {
		if step.Validate == nil {
			continue
		}
		for field, msg := range step.Validate(w.form) {
			if _, ok := errs[field]; !ok {
				errs[field] = msg
			}
		}
	}
	if len(errs) > 0 {
		return errs, nil
	}

	if w.cfg.EmailField != "" && w.cfg.EmailExists != nil {
		email := w.form[w.cfg.EmailField]
		exists, err := w.cfg.EmailExists(ctx, email)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err)
		}
		if exists {
			return map[string]string{w.cfg.EmailField: apperr.Message(apperr.New(apperr.CodeEmailInUse))}, nil
		}
	}

	if w.cfg.CaptchaField != "" && w.cfg.VerifyBot != nil {
		if err := w.cfg.VerifyBot(ctx, w.form[w.cfg.CaptchaField]); err != nil {
			return map[string]string{w.cfg.CaptchaField: "Verification failed. Please confirm you are not a robot."}, nil
		}
	}

	result, err := w.cfg.Submit(ctx, w.Form())
	if err != nil {
		return nil, err
	}

	w.finished = true
	w.result = result
	if w.cfg.Store != nil {
		if err := w.cfg.Store.Clear(w.cfg.Key); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
