package main

import (
	"context"
	"log"
	"sync"

	"github.com/chazu/pinfield/pkg/compiler"
	"github.com/chazu/pinfield/pkg/engine"
	"github.com/chazu/pinfield/pkg/field"
	"github.com/chazu/pinfield/pkg/relief"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine

	mu     sync.Mutex
	result *engine.Result
	fn     field.Field
	cfg    engine.Config
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend editor.
type EvalResult struct {
	Errors     []EvalErrorData `json:"errors"`
	Config     engine.Config   `json:"config"`
	HasPattern bool            `json:"hasPattern"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

// NewApp creates a new App with a fresh engine and no active pattern.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		cfg:    engine.DefaultConfig(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes script source, compiles the resulting pattern, and
// installs it as the active frame source. This is the primary binding
// called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Errors: []EvalErrorData{},
		Config: engine.DefaultConfig(),
	}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: err.Error(),
		})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	result.Config = res.Config

	var fn field.Field
	if res.Root != nil {
		fn, err = compiler.Compile(res.Root, compiler.Context{
			SecondsPerCycle: res.Config.SecondsPerCycle,
		})
		if err != nil {
			log.Printf("Compile error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message: "compile failed: " + err.Error(),
			})
			res.Close()
			return result
		}
		result.HasPattern = true
	}

	a.mu.Lock()
	prev := a.result
	a.result = res
	a.fn = fn
	a.cfg = res.Config
	a.mu.Unlock()

	// The previous result may hold a live interpreter for callbacks.
	if prev != nil {
		prev.Close()
	}

	return result
}

// Frame samples the active pattern at time t and returns the grid of pin
// heights in row-major order (z rows, then x columns), each clamped to
// [0,1]. Without an active pattern every pin rests at zero.
func (a *App) Frame(t float64) []float64 {
	a.mu.Lock()
	fn := a.fn
	n := a.cfg.GridSize
	a.mu.Unlock()

	heights := make([]float64, n*n)
	if fn == nil {
		return heights
	}

	step := 1.0 / float64(n-1)
	for iz := 0; iz < n; iz++ {
		z := float64(iz) * step
		for ix := 0; ix < n; ix++ {
			x := float64(ix) * step
			heights[iz*n+ix] = field.Clamp01(fn(x, z, t, n))
		}
	}
	return heights
}

// ExportRelief freezes the active pattern at time t and tessellates it
// into a printable solid. Returns an empty mesh when no pattern is active.
func (a *App) ExportRelief(t float64) MeshData {
	a.mu.Lock()
	fn := a.fn
	n := a.cfg.GridSize
	a.mu.Unlock()

	if fn == nil {
		return MeshData{Vertices: []float32{}, Normals: []float32{}, Indices: []uint32{}}
	}

	m := relief.Generate(fn, t, relief.Options{GridSize: n})
	return MeshData{
		Vertices: m.Vertices,
		Normals:  m.Normals,
		Indices:  m.Indices,
	}
}
