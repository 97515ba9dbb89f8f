package ast

import "github.com/coregx/nsre/matcher"

// Final adds a leaf node wrapping one matcher and returns its ID.
func (a *Arena[Tok, Out]) Final(m matcher.Matcher[Tok, Out]) NodeID {
	if m == nil {
		panic("nsre/ast: Final requires a non-nil matcher")
	}
	return a.add(node[Tok, Out]{kind: NodeFinal, matcher: m})
}

// Concat adds a node matching left followed by right.
func (a *Arena[Tok, Out]) Concat(left, right NodeID) NodeID {
	a.check(left)
	a.check(right)
	return a.add(node[Tok, Out]{kind: NodeConcatenation, left: left, right: right})
}

// Altern adds a node matching either left or right.
func (a *Arena[Tok, Out]) Altern(left, right NodeID) NodeID {
	a.check(left)
	a.check(right)
	return a.add(node[Tok, Out]{kind: NodeAlternation, left: left, right: right})
}

// Maybe adds a node matching 0 or 1 occurrence of stmt.
func (a *Arena[Tok, Out]) Maybe(stmt NodeID) NodeID {
	a.check(stmt)
	return a.add(node[Tok, Out]{kind: NodeMaybe, statement: stmt})
}

// AnyNumber adds a node matching 0 or more occurrences of stmt.
func (a *Arena[Tok, Out]) AnyNumber(stmt NodeID) NodeID {
	a.check(stmt)
	return a.add(node[Tok, Out]{kind: NodeAnyNumber, statement: stmt})
}

// Capture adds a named capture group around stmt. The matched span of stmt
// is recorded in the result tree under name.
func (a *Arena[Tok, Out]) Capture(name string, stmt NodeID) (NodeID, error) {
	if name == "" {
		return InvalidNode, ErrEmptyCaptureName
	}
	a.check(stmt)
	return a.add(node[Tok, Out]{kind: NodeCapture, statement: stmt, name: name}), nil
}

// Repeat adds a node matching exactly count occurrences of stmt, built as
// the count-fold concatenation of identity-distinct copies. count must be
// at least 1.
func (a *Arena[Tok, Out]) Repeat(stmt NodeID, count int) (NodeID, error) {
	if count < 1 {
		return InvalidNode, ErrRepeatCount
	}
	a.check(stmt)

	out := a.Copy(stmt)
	for i := 1; i < count; i++ {
		out = a.Concat(out, a.Copy(stmt))
	}
	return out, nil
}

// RepeatRange adds a node matching between lo and hi occurrences of stmt,
// both inclusive: lo mandatory copies concatenated with hi-lo optional
// ones. lo may be 0; hi must be at least 1 and not below lo.
func (a *Arena[Tok, Out]) RepeatRange(stmt NodeID, lo, hi int) (NodeID, error) {
	if lo < 0 || hi < lo || hi < 1 {
		return InvalidNode, ErrRepeatRange
	}
	a.check(stmt)

	out := InvalidNode
	if lo > 0 {
		out, _ = a.Repeat(stmt, lo)
	}
	for i := lo; i < hi; i++ {
		opt := a.Maybe(a.Copy(stmt))
		if out == InvalidNode {
			out = opt
		} else {
			out = a.Concat(out, opt)
		}
	}
	return out, nil
}

// RepeatAtLeast adds a node matching lo or more occurrences of stmt: lo
// mandatory copies followed by an unbounded tail. lo may be 0.
func (a *Arena[Tok, Out]) RepeatAtLeast(stmt NodeID, lo int) (NodeID, error) {
	if lo < 0 {
		return InvalidNode, ErrRepeatRange
	}
	a.check(stmt)

	tail := a.AnyNumber(a.Copy(stmt))
	if lo == 0 {
		return tail, nil
	}
	out, _ := a.Repeat(stmt, lo)
	return a.Concat(out, tail), nil
}

// Copy produces an identity-distinct structural clone of the subtree at
// id: same shape and matchers, all-new node IDs. The graph compiler keys
// its work on node identity, so every reuse of a sub-pattern must go
// through a copy; FromAST copies the whole tree for the same reason.
func (a *Arena[Tok, Out]) Copy(id NodeID) NodeID {
	a.check(id)
	n := a.nodes[id]
	switch n.kind {
	case NodeFinal:
		return a.add(node[Tok, Out]{kind: NodeFinal, matcher: n.matcher})
	case NodeConcatenation, NodeAlternation:
		left := a.Copy(n.left)
		right := a.Copy(n.right)
		return a.add(node[Tok, Out]{kind: n.kind, left: left, right: right})
	case NodeMaybe, NodeAnyNumber:
		return a.add(node[Tok, Out]{kind: n.kind, statement: a.Copy(n.statement)})
	case NodeCapture:
		return a.add(node[Tok, Out]{kind: NodeCapture, statement: a.Copy(n.statement), name: n.name})
	default:
		panic("nsre/ast: cannot copy node of kind " + n.kind.String())
	}
}

func (a *Arena[Tok, Out]) check(id NodeID) {
	if !a.Contains(id) {
		panic("nsre/ast: " + ErrInvalidNode.Error())
	}
}
