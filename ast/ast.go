// Package ast provides the pattern tree for the nsre engine.
//
// Patterns are built from matcher leaves with combinators: concatenation,
// alternation, optional and unbounded repetition, and named capture groups.
// Nodes live in an Arena and are identified by their arena ID, never by
// structural value: two structurally equal sub-patterns are still distinct
// nodes, which the graph compiler relies on when the same sub-pattern
// occurs several times (repetition builds identity-distinct copies).
package ast

import (
	"fmt"

	"github.com/coregx/nsre/matcher"
)

// NodeID uniquely identifies a pattern node within its Arena.
type NodeID uint32

// Special node constants. The sentinels are not stored in the arena; the
// graph compiler uses them as the synthetic start and acceptance nodes.
const (
	// InvalidNode represents an invalid/uninitialized node ID
	InvalidNode NodeID = 0xFFFFFFFF

	// InitialNode is the synthetic node every graph exploration starts from
	InitialNode NodeID = 0xFFFFFFFE

	// TerminalNode is the synthetic acceptance node; a graph node is
	// accepting iff it has an edge to TerminalNode
	TerminalNode NodeID = 0xFFFFFFFD
)

// maxArenaNodes keeps arena IDs clear of the sentinel range.
const maxArenaNodes = int(TerminalNode)

// NodeKind identifies the type of a pattern node.
type NodeKind uint8

const (
	// NodeFinal wraps exactly one Matcher; the only kind tested against a token
	NodeFinal NodeKind = iota

	// NodeConcatenation matches the left then the right statement
	NodeConcatenation

	// NodeAlternation matches either the left or the right statement
	NodeAlternation

	// NodeMaybe matches 0 or 1 occurrence of its statement
	NodeMaybe

	// NodeAnyNumber matches 0 or more occurrences of its statement
	NodeAnyNumber

	// NodeCapture records the span matched by its statement under a name
	NodeCapture

	// NodeInitial is the kind of the InitialNode sentinel
	NodeInitial

	// NodeTerminal is the kind of the TerminalNode sentinel
	NodeTerminal
)

// String returns a human-readable representation of the NodeKind
func (k NodeKind) String() string {
	switch k {
	case NodeFinal:
		return "Final"
	case NodeConcatenation:
		return "Concatenation"
	case NodeAlternation:
		return "Alternation"
	case NodeMaybe:
		return "Maybe"
	case NodeAnyNumber:
		return "AnyNumber"
	case NodeCapture:
		return "Capture"
	case NodeInitial:
		return "Initial"
	case NodeTerminal:
		return "Terminal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// node is one pattern tree node. Which fields are valid depends on kind.
type node[Tok any, Out comparable] struct {
	kind NodeKind

	// For Concatenation/Alternation
	left, right NodeID

	// For Maybe/AnyNumber/Capture
	statement NodeID

	// For Capture
	name string

	// For Final
	matcher matcher.Matcher[Tok, Out]
}

// Arena owns the nodes of one or more pattern trees. The zero Arena is not
// usable; create one with NewArena. Arenas are append-only: node IDs stay
// valid for the lifetime of the arena, so compiled graphs can keep
// referring to an arena that is still being built on.
type Arena[Tok any, Out comparable] struct {
	nodes []node[Tok, Out]
}

// NewArena creates an empty pattern arena.
func NewArena[Tok any, Out comparable]() *Arena[Tok, Out] {
	return &Arena[Tok, Out]{}
}

// Len returns the number of nodes currently in the arena.
func (a *Arena[Tok, Out]) Len() int {
	return len(a.nodes)
}

// Contains reports whether id refers to a node of this arena. The sentinel
// IDs are not arena nodes.
func (a *Arena[Tok, Out]) Contains(id NodeID) bool {
	return int(id) < len(a.nodes)
}

// Kind returns the kind of a node. The sentinel IDs report NodeInitial and
// NodeTerminal even though they are not stored in the arena.
func (a *Arena[Tok, Out]) Kind(id NodeID) NodeKind {
	switch id {
	case InitialNode:
		return NodeInitial
	case TerminalNode:
		return NodeTerminal
	}
	return a.nodes[id].kind
}

// Left returns the left statement of a Concatenation or Alternation node.
func (a *Arena[Tok, Out]) Left(id NodeID) NodeID {
	return a.nodes[id].left
}

// Right returns the right statement of a Concatenation or Alternation node.
func (a *Arena[Tok, Out]) Right(id NodeID) NodeID {
	return a.nodes[id].right
}

// Statement returns the child of a Maybe, AnyNumber or Capture node.
func (a *Arena[Tok, Out]) Statement(id NodeID) NodeID {
	return a.nodes[id].statement
}

// Name returns the capture name of a Capture node.
func (a *Arena[Tok, Out]) Name(id NodeID) string {
	return a.nodes[id].name
}

// Matcher returns the matcher wrapped by a Final node.
func (a *Arena[Tok, Out]) Matcher(id NodeID) matcher.Matcher[Tok, Out] {
	return a.nodes[id].matcher
}

func (a *Arena[Tok, Out]) add(n node[Tok, Out]) NodeID {
	if len(a.nodes) >= maxArenaNodes {
		panic("nsre/ast: arena node limit exceeded")
	}
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	return id
}
