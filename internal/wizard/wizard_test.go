package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/bitecare/clinic-backend/internal/common/apperr"
)

func reasonSteps() []Step {
	return []Step{
		{
			Name: "Reason",
			Validate: func(f Form) map[string]string {
				errs := map[string]string{}
				if f["appointmentReason"] == "" {
					errs["appointmentReason"] = "Please select a reason for your visit."
				}
				return errs
			},
		},
		{
			Name: "Schedule",
			Validate: func(f Form) map[string]string {
				errs := map[string]string{}
				if f["branch"] == "" {
					errs["branch"] = "Please choose a branch."
				}
				return errs
			},
		},
		{Name: "Review"},
	}
}

func TestAdvanceBlockedWithoutReason(t *testing.T) {
	w, err := New(Config{Key: "k", Steps: reasonSteps(), Store: NewMemoryDraftStore()})
	if err != nil {
		t.Fatal(err)
	}

	errs, err := w.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) == 0 {
		t.Fatal("advance with empty appointmentReason must not proceed")
	}
	if w.Step() != 1 {
		t.Errorf("step = %d, want 1", w.Step())
	}

	w.Set(Form{"appointmentReason": "New Incident"})
	errs, err = w.Advance()
	if err != nil || len(errs) != 0 {
		t.Fatalf("advance after setting reason: errs=%v err=%v", errs, err)
	}
	if w.Step() != 2 {
		t.Errorf("step = %d, want 2", w.Step())
	}
}

func TestDraftRoundTrip(t *testing.T) {
	store := NewMemoryDraftStore()

	w, err := New(Config{Key: "appt:u1", Steps: reasonSteps(), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	w.Set(Form{"appointmentReason": "Follow-up", "branch": "Makati"})
	if _, err := w.Advance(); err != nil {
		t.Fatal(err)
	}

	// Simulate a reload: rebuild the wizard from the same store and key.
	reloaded, err := New(Config{Key: "appt:u1", Steps: reasonSteps(), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Step() != 2 {
		t.Errorf("reloaded step = %d, want 2", reloaded.Step())
	}
	if !reflect.DeepEqual(reloaded.Form(), w.Form()) {
		t.Errorf("reloaded form = %v, want %v", reloaded.Form(), w.Form())
	}
}

func TestFreshDraftStartsAtStepOne(t *testing.T) {
	w, err := New(Config{Key: "nothing-saved", Steps: reasonSteps(), Store: NewMemoryDraftStore()})
	if err != nil {
		t.Fatal(err)
	}
	if w.Step() != 1 || len(w.Form()) != 0 {
		t.Errorf("fresh wizard: step=%d form=%v", w.Step(), w.Form())
	}
}

func TestRetreatDoesNotValidate(t *testing.T) {
	store := NewMemoryDraftStore()
	w, _ := New(Config{Key: "k", Steps: reasonSteps(), Store: store})
	w.Set(Form{"appointmentReason": "New Incident"})
	if _, err := w.Advance(); err != nil {
		t.Fatal(err)
	}
	w.Set(Form{"appointmentReason": ""}) // invalidate step 1
	if err := w.Retreat(); err != nil {
		t.Fatal(err)
	}
	if w.Step() != 1 {
		t.Errorf("step = %d, want 1", w.Step())
	}
	// Retreat at the first step stays there.
	if err := w.Retreat(); err != nil {
		t.Fatal(err)
	}
	if w.Step() != 1 {
		t.Errorf("step = %d, want 1", w.Step())
	}
}

func TestSubmitHappyPath(t *testing.T) {
	store := NewMemoryDraftStore()
	var submitted Form
	w, _ := New(Config{
		Key:   "k",
		Steps: reasonSteps(),
		Store: store,
		Submit: func(_ context.Context, f Form) (map[string]string, error) {
			submitted = f
			return map[string]string{"appointmentId": "A-1"}, nil
		},
	})
	w.Set(Form{"appointmentReason": "New Incident", "branch": "Makati"})

	errs, err := w.Submit(context.Background())
	if err != nil || len(errs) != 0 {
		t.Fatalf("submit: errs=%v err=%v", errs, err)
	}
	if !w.Finished() || w.Result()["appointmentId"] != "A-1" {
		t.Errorf("finished=%v result=%v", w.Finished(), w.Result())
	}
	if submitted["branch"] != "Makati" {
		t.Errorf("submitted form = %v", submitted)
	}
	if d, _ := store.Load("k"); d != nil {
		t.Error("draft should be cleared after successful submission")
	}
}

func TestSubmitValidatesAllSteps(t *testing.T) {
	w, _ := New(Config{Key: "k", Steps: reasonSteps(), Store: NewMemoryDraftStore(),
		Submit: func(context.Context, Form) (map[string]string, error) {
			t.Fatal("submit must not run when validation fails")
			return nil, nil
		}})
	w.Set(Form{"appointmentReason": "Follow-up"}) // branch missing

	errs, err := w.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if errs["branch"] == "" {
		t.Errorf("expected branch error, got %v", errs)
	}
}

func TestSubmitEmailExists(t *testing.T) {
	steps := []Step{{Name: "Account"}}
	w, _ := New(Config{
		Key: "k", Steps: steps, Store: NewMemoryDraftStore(),
		EmailField:  "email",
		EmailExists: func(_ context.Context, email string) (bool, error) { return email == "taken@x.ph", nil },
		Submit: func(context.Context, Form) (map[string]string, error) {
			t.Fatal("submit must not run for an existing email")
			return nil, nil
		},
	})
	w.Set(Form{"email": "taken@x.ph"})

	errs, err := w.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if errs["email"] == "" {
		t.Errorf("expected email error, got %v", errs)
	}
}

func TestSubmitBotCheckFails(t *testing.T) {
	w, _ := New(Config{
		Key: "k", Steps: []Step{{Name: "Finish"}}, Store: NewMemoryDraftStore(),
		CaptchaField: "captchaToken",
		VerifyBot:    func(context.Context, string) error { return errors.New("rejected") },
		Submit: func(context.Context, Form) (map[string]string, error) {
			t.Fatal("submit must not run when bot verification fails")
			return nil, nil
		},
	})

	errs, err := w.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if errs["captchaToken"] == "" {
		t.Errorf("expected captcha error, got %v", errs)
	}
}

func TestSubmitProviderFailureKeepsDraft(t *testing.T) {
	store := NewMemoryDraftStore()
	w, _ := New(Config{
		Key: "k", Steps: []Step{{Name: "Finish"}}, Store: store,
		Submit: func(context.Context, Form) (map[string]string, error) {
			return nil, apperr.New(apperr.CodeInternal)
		},
	})
	w.Set(Form{"x": "1"})
	if _, err := w.Advance(); err != nil {
		t.Fatal(err)
	}

	_, err := w.Submit(context.Background())
	if err == nil {
		t.Fatal("expected provider error")
	}
	if apperr.CodeOf(err) != apperr.CodeInternal {
		t.Errorf("code = %q", apperr.CodeOf(err))
	}
	if w.Finished() {
		t.Error("wizard must stay on the submission step")
	}
	if d, _ := store.Load("k"); d == nil {
		t.Error("draft must survive a failed submission for manual retry")
	}
}
