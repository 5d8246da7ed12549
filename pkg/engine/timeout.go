package engine

import (
	"fmt"
	"sync"
	"time"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult is the internal type used to pass evaluation results through
// channels.
type evalResult struct {
	result *Result
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds the given timeout. It uses a generation counter
// to discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; a drainer waits for its
// eventual result and closes it, so a late interpreter never leaks.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*Result, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			// A newer evaluation was started; discard this result.
			if res.result != nil {
				res.result.Close()
			}
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}

		return res.result, res.errors, res.err

	case <-timer.C:
		// The evaluation goroutine sends exactly once; collect its result
		// whenever it lands and release the interpreter.
		go func() {
			if res := <-ch; res.result != nil {
				res.result.Close()
			}
		}()
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
