package goliwc

import (
	"sync"

	"github.com/germtb/goliwc/dom"
)

// mount records what the last render placed into a container.
type mount struct {
	nodes []*dom.Node
	refs  []boundRef
}

type boundRef struct {
	ref  func(*dom.Node)
	node *dom.Node
}

// Runtime holds all global mutable state for goliwc.
// This enables easy state clearing for tests via Reset().
type Runtime struct {
	mu sync.Mutex

	// Context in effect for the component currently rendering.
	currentContext Context

	// Render output per container.
	mounts map[*dom.Node]*mount
}

// Global is the package-level runtime instance.
var Global *Runtime

func init() {
	Global = NewRuntime()
}

// NewRuntime creates a new Runtime with initialized state.
func NewRuntime() *Runtime {
	return &Runtime{
		currentContext: DefaultContext,
		mounts:         make(map[*dom.Node]*mount),
	}
}

// Reset clears and reinitializes the global runtime.
// Call this at the start of tests for clean isolation.
func Reset() {
	Global = NewRuntime()
}

func (rt *Runtime) getCurrentContext() Context {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.currentContext
}

func (rt *Runtime) setCurrentContext(ctx Context) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.currentContext = ctx
}

func (rt *Runtime) takeMount(container *dom.Node) *mount {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	m := rt.mounts[container]
	delete(rt.mounts, container)
	return m
}

func (rt *Runtime) setMount(container *dom.Node, m *mount) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.mounts[container] = m
}

// Mounted reports whether container currently holds render output.
func (rt *Runtime) Mounted(container *dom.Node) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	_, ok := rt.mounts[container]
	return ok
}

// RunWithContext runs fn with ctx as the current context.
func RunWithContext[T any](ctx Context, fn func() T) T {
	prev := Global.getCurrentContext()
	Global.setCurrentContext(ctx)

	defer func() {
		Global.setCurrentContext(prev)
	}()

	return fn()
}
