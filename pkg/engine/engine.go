// Package engine evaluates pinfield scripts. It wraps zygomys in a
// sandboxed environment, exposes the pattern DSL as builtins, and hands
// back the surviving root pattern plus the script's host configuration.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/pinfield/pkg/pattern"
)

// prelude is injected ahead of every script as a single line; the error
// extraction below compensates so user line numbers stay stable.
const prelude = `(def pi 3.141592653589793) (def tau 6.283185307179586)`

// preludeLines is the number of lines the prelude occupies.
const preludeLines = 1

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result bundles the output of a successful evaluation. Root is the last
// unconsumed pattern the script created, or nil when the script produced
// none. The Result keeps the zygomys environment alive so that
// script-defined callbacks stay callable while the compiled pattern is in
// use; Close releases it.
type Result struct {
	Root   *pattern.Node
	Roots  []*pattern.Node
	Config Config

	mu  sync.Mutex
	env *zygo.Zlisp
}

// Close releases the underlying interpreter. Sampling a compiled pattern
// that uses script callbacks after Close yields zeroes from those
// callbacks.
func (r *Result) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.env != nil {
		r.env.Stop()
		r.env = nil
	}
}

// Engine evaluates scripts. Each call to Evaluate creates a fresh
// sandboxed environment and a fresh build session, so evaluations are
// deterministic and independent.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and produces a Result.
//
// Return semantics:
//   - On success: Result + nil errors + nil error
//   - On parse/eval failure: nil Result + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, EvalTimeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	cfg := DefaultConfig()

	// An empty script is a valid program that produces no pattern.
	if strings.TrimSpace(source) == "" {
		return &Result{Config: cfg}, nil, nil
	}

	// Sandbox mode prevents user code from reaching the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()

	session := pattern.NewSession()
	registerBuiltins(env, session, &cfg)

	src := prelude + "\n" + preprocessSource(source)

	if err := env.LoadString(src); err != nil {
		env.Stop()
		return nil, parseZygomysError(err), nil
	}

	if _, err := env.Run(); err != nil {
		env.Stop()
		return nil, parseZygomysError(err), nil
	}

	return &Result{
		Root:   session.Last(),
		Roots:  session.Roots(),
		Config: cfg,
		env:    env,
	}, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, compensating line numbers for the injected prelude.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		return []EvalError{lineError(m)}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		return []EvalError{lineError(m)}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Line:    0,
		Col:     0,
		Message: strings.TrimSpace(msg),
	}}
}

func lineError(m []string) EvalError {
	line, _ := strconv.Atoi(m[1])
	line -= preludeLines
	if line < 0 {
		line = 0
	}
	return EvalError{
		Line:    line,
		Col:     0,
		Message: strings.TrimSpace(m[2]),
	}
}
