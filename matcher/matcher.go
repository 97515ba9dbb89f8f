// Package matcher defines the single-token matching capability used by the
// nsre engine, along with the built-in matchers.
//
// A Matcher decides whether, and to what output, one token of the input
// sequence satisfies a leaf of the pattern. Matchers are free to transform
// the token into a derived output value (see OutOf and ContainsAny), and may
// yield more than one output for a single token.
//
// User code can supply its own matchers by implementing the Matcher
// interface; the engine imposes no requirements on the token type beyond
// what the matchers in use need.
package matcher

import "slices"

// Capture identifies one capture group occurrence inside a compiled graph.
// ID is the arena ID of the capture node, so two groups with the same name
// remain distinct.
type Capture struct {
	ID   uint32
	Name string
}

// EdgeData is the capture metadata attached to a graph edge. StartCaptures
// lists the groups opened when the edge is traversed, StopCaptures the
// groups closed. Both lists respect the LIFO nesting discipline of capture
// groups. EdgeData values are immutable once built.
type EdgeData struct {
	StartCaptures []Capture
	StopCaptures  []Capture
}

// Equal reports whether two edge payloads carry the same capture metadata.
// A nil payload equals a payload with no captures.
func (d *EdgeData) Equal(o *EdgeData) bool {
	if d == o {
		return true
	}
	var ds, dp, os, op []Capture
	if d != nil {
		ds, dp = d.StartCaptures, d.StopCaptures
	}
	if o != nil {
		os, op = o.StartCaptures, o.StopCaptures
	}
	return slices.Equal(ds, os) && slices.Equal(dp, op)
}

// TrailItem is one step of a candidate parse: the output the matcher
// produced for the consumed token, plus the metadata of the traversed edge.
// The item is the matcher's output, not the input token.
type TrailItem[Out comparable] struct {
	Item Out
	Edge *EdgeData
}

// Trail is the ordered list of steps taken by one candidate parse so far.
// Matchers receive it as read-only context; the last item is the pending
// step for the token currently under test and carries a zero Item.
type Trail[Out comparable] []TrailItem[Out]

// Matcher tests a single token. It returns the ordered outputs the token
// matched as, or an empty slice if the token does not match. Returning more
// than one output forks the simulation into one candidate per output.
type Matcher[Tok any, Out comparable] interface {
	Match(token Tok, trail Trail[Out]) []Out
}
