package engine

import (
	"strings"
	"testing"

	"github.com/chazu/pinfield/pkg/pattern"
)

func TestEvaluateEmptySource(t *testing.T) {
	res, evalErrs, err := NewEngine().Evaluate("")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if res.Root != nil {
		t.Errorf("Root = %v, want nil", res.Root)
	}
	if res.Config != DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", res.Config)
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	res, evalErrs, err := NewEngine().Evaluate("  \n\t ; just a comment\n")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("err=%v evalErrs=%v", err, evalErrs)
	}
	if res.Root != nil {
		t.Errorf("Root = %v, want nil", res.Root)
	}
}

func TestEvaluateLastRootWins(t *testing.T) {
	res := evalOne(t, "(flat 0.1)\n(flat 0.9)")
	if res.Root == nil {
		t.Fatal("no root")
	}
	if h := res.Root.Arg("h").(pattern.Constant); float64(h) != 0.9 {
		t.Errorf("Root h = %v, want 0.9 (last created)", h)
	}
	if len(res.Roots) != 2 {
		t.Errorf("Roots = %d, want 2", len(res.Roots))
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	res, evalErrs, err := NewEngine().Evaluate("(flat 0.5")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if res != nil {
		t.Error("result should be nil on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	res, evalErrs, err := NewEngine().Evaluate(`(undefinedfunction 1 2)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if res != nil {
		t.Error("result should be nil on runtime failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for undefined symbol")
	}
}

func TestEvaluatePreludeConstants(t *testing.T) {
	res := evalOne(t, `(flat (/ pi pi))`)
	if h := res.Root.Arg("h").(pattern.Constant); float64(h) != 1 {
		t.Errorf("pi/pi = %v, want 1", h)
	}
}

func TestEvaluateIndependentSessions(t *testing.T) {
	e := NewEngine()

	res1, _, err := e.Evaluate(`(flat 0.1)`)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()

	res2, _, err := e.Evaluate(`(flat 0.2)`)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if len(res2.Roots) != 1 {
		t.Errorf("second evaluation sees %d roots, want 1 (fresh session)", len(res2.Roots))
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
	}{
		// The prelude occupies line 1, so reported lines shift down by one.
		{"long form", "Error on line 3: unexpected token", 2},
		{"short form", "line 2: problem", 1},
		{"no line info", "something went wrong", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message == "" {
				t.Error("empty message")
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestEvalErrorString(t *testing.T) {
	e := EvalError{Line: 4, Message: "bad form"}
	if got := e.Error(); !strings.Contains(got, "line 4") {
		t.Errorf("Error() = %q, want line prefix", got)
	}
	e = EvalError{Message: "general failure"}
	if got := e.Error(); got != "general failure" {
		t.Errorf("Error() = %q", got)
	}
}

func TestResultCloseIdempotent(t *testing.T) {
	res := evalOne(t, `(flat)`)
	res.Close()
	res.Close()
}
