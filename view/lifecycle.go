package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// State is a page's load state.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

var ErrIllegalTransition = errors.New("illegal page state transition")

// Lifecycle tracks one page activation: Idle -> Loading -> Ready | Failed.
type Lifecycle struct {
	mu      sync.Mutex
	state   State
	history []State
	err     error
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: Idle, history: []State{Idle}}
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// History returns every state the page has been in, in order.
func (l *Lifecycle) History() []State {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]State, len(l.history))
	copy(out, l.history)
	return out
}

// Err is the failure that moved the page to Failed, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Lifecycle) Begin() error {
	return l.transition(Idle, Loading, nil)
}

func (l *Lifecycle) Succeed() error {
	return l.transition(Loading, Ready, nil)
}

func (l *Lifecycle) Fail(err error) error {
	return l.transition(Loading, Failed, err)
}

func (l *Lifecycle) transition(from, to State, cause error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, l.state, to)
	}
	l.state = to
	l.err = cause
	l.history = append(l.history, to)
	return nil
}

// Fetch loads one resource into the page model.
type Fetch func(ctx context.Context) error

// Load runs fetches concurrently and waits for all of them. The first error
// cancels the rest and moves the page to Failed; there is no partial result.
// ctx should be the request context so a disconnect aborts outstanding calls.
func Load(ctx context.Context, lc *Lifecycle, fetches ...Fetch) error {
	if err := lc.Begin(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		fetch := fetch
		g.Go(func() error {
			return fetch(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		_ = lc.Fail(err)
		return err
	}
	return lc.Succeed()
}
