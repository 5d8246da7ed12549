package main

import (
	"fmt"
	"testing"
)

// Edge-case coverage for the app pipeline beyond the happy path in
// app_test.go.

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`; nothing but commentary
;; more commentary`)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if result.HasPattern {
		t.Error("comments should not produce a pattern")
	}
}

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(flat 0.5)\n(wave :fx\n")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors")
	}
	// Line numbers, when reported, must refer to user source, never the
	// injected prelude.
	for _, e := range result.Errors {
		if e.Line < 0 {
			t.Errorf("negative line number: %+v", e)
		}
	}
}

func TestE2EArithmeticInArguments(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`
(def half 0.5)
(flat (* half 0.5))`)

	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if got := app.Frame(0)[0]; got != 0.25 {
		t.Errorf("pin 0 = %v, want 0.25", got)
	}
}

func TestE2EPreludeConstantsAvailable(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(rotate (wave 2 2) (/ pi 2))`)

	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if !result.HasPattern {
		t.Error("expected a pattern")
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	app := NewApp()

	// Simulates an editor firing on every keystroke. Each evaluation must
	// fully replace the previous one without leaking interpreters.
	for i := 0; i < 20; i++ {
		h := float64(i) / 20
		result := app.Evaluate(fmt.Sprintf(`(flat %g)`, h))
		if len(result.Errors) > 0 {
			t.Fatalf("iteration %d: %v", i, result.Errors)
		}
		if got := app.Frame(0)[0]; got != h {
			t.Fatalf("iteration %d: pin 0 = %v, want %v", i, got, h)
		}
	}
}

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	app := NewApp()

	// Alternate between valid and broken sources; the last good pattern
	// must survive every broken step.
	for i := 0; i < 10; i++ {
		if r := app.Evaluate(`(flat 0.6)`); len(r.Errors) > 0 {
			t.Fatalf("valid step %d failed: %v", i, r.Errors)
		}
		if r := app.Evaluate(`(flat`); len(r.Errors) == 0 {
			t.Fatalf("broken step %d reported no errors", i)
		}
		if got := app.Frame(0)[0]; got != 0.6 {
			t.Fatalf("step %d: pin 0 = %v, want 0.6", i, got)
		}
	}
}

func TestE2ECallbackSurvivesFrameCalls(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(map (fn [x z t n] (* t 0.1)))`)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}

	// The script function is invoked through the interpreter on every
	// sample; repeated frames must keep working.
	for i := 1; i <= 5; i++ {
		tt := float64(i)
		if got := app.Frame(tt)[0]; got != tt*0.1 {
			t.Fatalf("t=%v: pin 0 = %v, want %v", tt, got, tt*0.1)
		}
	}
}

func TestE2ESequenceAnimatesOverTime(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(seq (flat 0) (flat 1))`)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}

	// Timeline: first item [0,1), crossfade, second item [1.4,2.4).
	if got := app.Frame(0.5)[0]; got != 0 {
		t.Errorf("t=0.5: pin 0 = %v, want 0", got)
	}
	if got := app.Frame(1.5)[0]; got != 1 {
		t.Errorf("t=1.5: pin 0 = %v, want 1", got)
	}
}

func TestE2EGridResizeMidSession(t *testing.T) {
	app := NewApp()

	app.Evaluate(`(setdim 16) (flat 0.5)`)
	if got := len(app.Frame(0)); got != 256 {
		t.Fatalf("frame length = %d, want 256", got)
	}

	app.Evaluate(`(setdim 48) (flat 0.5)`)
	if got := len(app.Frame(0)); got != 48*48 {
		t.Fatalf("frame length = %d, want %d", got, 48*48)
	}
}

func TestE2EConfigWithoutPattern(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(setdim 24) (setbg "#ffffff")`)

	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if result.HasPattern {
		t.Error("setters alone should not produce a pattern")
	}
	if result.Config.GridSize != 24 || result.Config.Background != "#ffffff" {
		t.Errorf("config = %+v", result.Config)
	}
	// A frame still comes back at the configured size, all zero.
	if got := len(app.Frame(0)); got != 24*24 {
		t.Errorf("frame length = %d, want %d", got, 24*24)
	}
}

func TestE2EInfiniteHoldFreezesFinalState(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(seq (flat 0.3) (sleep))`)
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}

	for _, tt := range []float64{1, 50, 5000} {
		if got := app.Frame(tt)[0]; got != 0.3 {
			t.Fatalf("t=%v: pin 0 = %v, want held 0.3", tt, got)
		}
	}
}
