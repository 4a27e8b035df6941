// Copyright 2024 The Patchgmg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timer implements Timer and Timing (§4.11): a tree of named,
// strictly-nested scoped timings, reported hierarchically via
// github.com/cpmech/gosl/io or exported as JSON.
package timer

import (
	"encoding/json"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/patchgmg/gmgerr"
)

// Timing is one node of the timing tree: a named scope, possibly
// associated with a Domain id, recording call count and min/max/sum
// elapsed time across every call.
type Timing struct {
	Name     string
	DomainID int
	HasDom   bool

	NumCalls int
	Min      time.Duration
	Max      time.Duration
	Sum      time.Duration

	parent   *Timing
	children []*Timing

	running   bool
	startedAt time.Time
}

func newTiming(name string, parent *Timing) *Timing {
	return &Timing{Name: name, parent: parent}
}

func (t *Timing) child(name string) *Timing {
	for _, c := range t.children {
		if c.Name == name {
			return c
		}
	}
	c := newTiming(name, t)
	t.children = append(t.children, c)
	return c
}

// Timer owns the root of the timing tree plus the nesting stack of
// currently-running timings.
type Timer struct {
	root  *Timing
	stack []*Timing

	domains map[int]string // registered Domain id -> descriptive label
}

// New returns an empty Timer.
func New() *Timer {
	return &Timer{root: newTiming("", nil), domains: make(map[int]string)}
}

// AddDomain registers a Domain id with a descriptive label, so that
// later StartDomainTiming calls can tag timings with it. Registering
// the same id twice is a RuntimeError.
func (t *Timer) AddDomain(id int, label string) {
	if _, ok := t.domains[id]; ok {
		panic(gmgerr.NewRuntimeError("timer: domain id %d already registered", id))
	}
	t.domains[id] = label
}

// Start begins timing name, nested under whichever timing is currently
// on top of the stack (or the root, if the stack is empty).
func (t *Timer) Start(name string) {
	t.start(name, 0, false)
}

// StartDomainTiming begins timing name tagged with the given Domain id,
// which must have been previously registered via AddDomain.
func (t *Timer) StartDomainTiming(id int, name string) {
	if _, ok := t.domains[id]; !ok {
		panic(gmgerr.NewRuntimeError("timer: domain id %d was never registered", id))
	}
	t.start(name, id, true)
}

func (t *Timer) start(name string, domainID int, hasDom bool) {
	top := t.root
	if len(t.stack) > 0 {
		top = t.stack[len(t.stack)-1]
	}
	node := top.child(name)
	node.DomainID = domainID
	node.HasDom = hasDom
	node.running = true
	node.startedAt = time.Now()
	t.stack = append(t.stack, node)
}

// Stop ends the most recently started, not-yet-stopped timing, which
// must be named name. Stopping any other name is a RuntimeError naming
// the timing that was actually expected.
func (t *Timer) Stop(name string) {
	if len(t.stack) == 0 {
		panic(gmgerr.NewRuntimeError("timer: stop(%s) called with no timing running", name))
	}
	top := t.stack[len(t.stack)-1]
	if top.Name != name {
		panic(gmgerr.NewRuntimeError("timer: expected stop(%s), got stop(%s)", top.Name, name))
	}
	elapsed := time.Since(top.startedAt)
	top.running = false
	top.NumCalls++
	top.Sum += elapsed
	if top.NumCalls == 1 || elapsed < top.Min {
		top.Min = elapsed
	}
	if elapsed > top.Max {
		top.Max = elapsed
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// AnyRunning reports whether any timing remains unstopped, per §3.2
// invariant 7 (a Cycle may not run while a prior run's timer is still
// open).
func (t *Timer) AnyRunning() bool {
	return len(t.stack) > 0
}

// Report prints a hierarchical text summary of every timing in the
// tree via github.com/cpmech/gosl/io: a simple "A → B" path when a node
// was called exactly once, otherwise a count/min/max/sum line.
func (t *Timer) Report() {
	for _, c := range t.root.children {
		reportNode(c, "")
	}
}

func reportNode(n *Timing, prefix string) {
	path := n.Name
	if prefix != "" {
		path = prefix + " → " + n.Name
	}
	if n.NumCalls == 1 {
		io.Pf("%s: %v\n", path, n.Sum)
	} else {
		io.Pf("%s: n=%d min=%v max=%v sum=%v\n", path, n.NumCalls, n.Min, n.Max, n.Sum)
	}
	for _, c := range n.children {
		reportNode(c, path)
	}
}

type jsonTiming struct {
	Name     string       `json:"name"`
	DomainID *int         `json:"domain_id,omitempty"`
	NumCalls int          `json:"num_calls"`
	MinNs    int64        `json:"min_ns"`
	MaxNs    int64        `json:"max_ns"`
	SumNs    int64        `json:"sum_ns"`
	Children []jsonTiming `json:"children,omitempty"`
}

func toJSON(n *Timing) jsonTiming {
	j := jsonTiming{
		Name:     n.Name,
		NumCalls: n.NumCalls,
		MinNs:    n.Min.Nanoseconds(),
		MaxNs:    n.Max.Nanoseconds(),
		SumNs:    n.Sum.Nanoseconds(),
	}
	if n.HasDom {
		id := n.DomainID
		j.DomainID = &id
	}
	for _, c := range n.children {
		j.Children = append(j.Children, toJSON(c))
	}
	return j
}

// ExportJSON serializes the full timing tree to JSON.
func (t *Timer) ExportJSON() ([]byte, error) {
	roots := make([]jsonTiming, len(t.root.children))
	for i, c := range t.root.children {
		roots[i] = toJSON(c)
	}
	return json.MarshalIndent(roots, "", "  ")
}
