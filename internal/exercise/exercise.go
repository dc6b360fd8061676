// Package exercise defines exercises and the per-exercise progression
// state machine that advances goals as editor snapshots satisfy them.
package exercise

import (
	"fmt"

	"github.com/vimdojo/vimdojo/internal/goal"
)

// FlowPolicy governs how an exercise's goals must be satisfied.
type FlowPolicy int

const (
	// Sequential requires goals to be satisfied in declared order,
	// one at a time.
	Sequential FlowPolicy = iota
	// AnyOrder requires every goal to be satisfied, in any order,
	// possibly across different samples.
	AnyOrder
	// Parallel requires every goal to be satisfied simultaneously
	// within one single sample.
	Parallel
)

// ParseFlowPolicy parses the content-file flow policy names.
func ParseFlowPolicy(s string) (FlowPolicy, error) {
	switch s {
	case "sequential", "":
		return Sequential, nil
	case "any_order":
		return AnyOrder, nil
	case "parallel":
		return Parallel, nil
	default:
		return Sequential, fmt.Errorf("unknown flow policy: %q", s)
	}
}

func (p FlowPolicy) String() string {
	switch p {
	case AnyOrder:
		return "any_order"
	case Parallel:
		return "parallel"
	default:
		return "sequential"
	}
}

// Exercise is one practice unit: an initial buffer plus an ordered goal
// list. Immutable once loaded; goal order is significant for Sequential.
type Exercise struct {
	Title       string
	Description string
	SampleLines []string
	Goals       []goal.Goal
	Flow        FlowPolicy
}
