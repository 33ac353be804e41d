// Package delay provides randomized pacing for automated browsing
package delay

import (
	"math/rand"
	"time"
)

// Provider produces bounded pauses between browser interactions. The
// production implementation sleeps a random duration; tests swap in Nop to
// keep extraction deterministic and fast.
type Provider interface {
	Sleep(min, max time.Duration)
}

// Jitter sleeps a uniformly random duration within [min, max]
type Jitter struct{}

func (Jitter) Sleep(min, max time.Duration) {
	if max < min {
		min, max = max, min
	}
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}
	time.Sleep(d)
}

// Nop skips all pauses
type Nop struct{}

func (Nop) Sleep(min, max time.Duration) {}
