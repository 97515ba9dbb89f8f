package nsre

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zostay/go-std/slices"

	"github.com/coregx/nsre/matcher"
)

// Match is one frozen result of a match: the ordered outputs along the
// accepted path and, per capture name, the sub-matches recorded for that
// group. Matches are immutable.
type Match[Out comparable] struct {
	// StartPos is the index of the first matched token in the searched
	// sequence. Matches found by Search carry the probe offset; for Match
	// and MatchPrefix the root is always 0 and children carry the index of
	// their first token.
	StartPos int

	// Trail is the ordered outputs of the matchers along the path. It
	// holds matcher outputs, not input tokens.
	Trail []Out

	children map[string][]*Match[Out]
}

// Child returns the first match recorded for the named capture group, or
// nil when the group never matched.
func (m *Match[Out]) Child(name string) *Match[Out] {
	kids := m.children[name]
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}

// Children returns every match recorded for the named capture group, in
// order of occurrence.
func (m *Match[Out]) Children(name string) MatchList[Out] {
	return MatchList[Out](m.children[name])
}

// Names returns the capture names present in this match, sorted.
func (m *Match[Out]) Names() []string {
	names := make([]string, 0, len(m.children))
	for name := range m.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Joined renders the trail as one string. It is intended for patterns over
// character tokens, where each output is a rune; other output types are
// formatted with %v.
func (m *Match[Out]) Joined() string {
	var sb strings.Builder
	for _, item := range m.Trail {
		switch v := any(item).(type) {
		case rune:
			sb.WriteRune(v)
		case byte:
			sb.WriteByte(v)
		case string:
			sb.WriteString(v)
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	return sb.String()
}

// MatchList is the ordered collection of matches produced by one match
// call. A no-match is an empty list, never an error.
type MatchList[Out comparable] []*Match[Out]

// First returns the first match, or nil when the list is empty.
func (l MatchList[Out]) First() *Match[Out] {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Child returns the named capture group of the first match, or nil when
// there is no match or no such group.
func (l MatchList[Out]) Child(name string) *Match[Out] {
	if len(l) == 0 {
		return nil
	}
	return l[0].Child(name)
}

// matchBuilder accumulates one match while a trail is replayed. It tracks
// the stack of currently open capture groups and appends each output to
// the innermost open scope and every ancestor scope.
type matchBuilder[Out comparable] struct {
	startPos int
	children map[string][]*matchBuilder[Out]
	trail    []Out
	stack    []matcher.Capture
}

func newMatchBuilder[Out comparable](startPos int) *matchBuilder[Out] {
	return &matchBuilder[Out]{
		startPos: startPos,
		children: make(map[string][]*matchBuilder[Out]),
	}
}

// deepGet follows the open-capture stack down to the innermost builder,
// taking the most recent child at every level.
func (b *matchBuilder[Out]) deepGet(stack []matcher.Capture) *matchBuilder[Out] {
	ptr := b
	for _, c := range stack {
		kids := ptr.children[c.Name]
		ptr = kids[len(kids)-1]
	}
	return ptr
}

// start opens a capture group at token index pos. A name may recur, so a
// fresh child builder is appended rather than replacing an earlier one.
func (b *matchBuilder[Out]) start(c matcher.Capture, pos int) {
	innermost := b.deepGet(b.stack)
	innermost.children[c.Name] = append(innermost.children[c.Name], newMatchBuilder[Out](pos))
	b.stack = append(b.stack, c)
}

// stop closes the innermost open capture group. The compiler guarantees
// balanced, properly nested capture markers on every accepted path; a
// mismatch here is a compiler defect, not a user error, and must never be
// swallowed into an empty result.
func (b *matchBuilder[Out]) stop(c matcher.Capture) {
	if len(b.stack) == 0 {
		panic(fmt.Sprintf("nsre: internal error: stop of capture %q with no open group", c.Name))
	}
	if top := b.stack[len(b.stack)-1]; top != c {
		panic(fmt.Sprintf("nsre: internal error: stop of capture %q while %q is innermost", c.Name, top.Name))
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// appendItem records one matched output in the root trail and in every
// open capture scope.
func (b *matchBuilder[Out]) appendItem(item Out) {
	b.trail = append(b.trail, item)
	ptr := b
	for _, c := range b.stack {
		kids := ptr.children[c.Name]
		ptr = kids[len(kids)-1]
		ptr.trail = append(ptr.trail, item)
	}
}

// toMatch freezes the builder tree into immutable Match values.
func (b *matchBuilder[Out]) toMatch() *Match[Out] {
	m := &Match[Out]{
		StartPos: b.startPos,
		Trail:    b.trail,
		children: make(map[string][]*Match[Out], len(b.children)),
	}
	for name, kids := range b.children {
		m.children[name] = slices.Map(kids, func(kb *matchBuilder[Out]) *Match[Out] {
			return kb.toMatch()
		})
	}
	return m
}

// replayTrail rebuilds the capture structure of one accepted trail. For
// each step it first closes the groups the edge stops, innermost first,
// then opens the groups the edge starts, then appends the matched output.
// base offsets every recorded position, so Search can report absolute
// start positions.
func replayTrail[Out comparable](trail matcher.Trail[Out], base int) *matchBuilder[Out] {
	b := newMatchBuilder[Out](base)

	for i, step := range trail {
		if step.Edge != nil {
			for _, c := range step.Edge.StopCaptures {
				b.stop(c)
			}
			for _, c := range step.Edge.StartCaptures {
				b.start(c, base+i)
			}
		}
		b.appendItem(step.Item)
	}
	return b
}
