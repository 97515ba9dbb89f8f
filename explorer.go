package nsre

import (
	"github.com/coregx/nsre/ast"
	"github.com/coregx/nsre/matcher"
)

// explorer is one live candidate parse: a position in the graph plus the
// trail of outputs matched to get there. Explorers are immutable; advancing
// spawns new ones.
type explorer[Tok any, Out comparable] struct {
	node  ast.NodeID
	trail matcher.Trail[Out]
}

// advance consumes one token and returns the explorers that managed to
// move to a successor node. An explorer with no matching successor simply
// produces nothing: local pruning, not global rejection.
func (e *explorer[Tok, Out]) advance(g *graph[Tok, Out], token Tok) []*explorer[Tok, Out] {
	var out []*explorer[Tok, Out]

	for _, he := range g.g.successors(e.node) {
		if g.arena.Kind(he.to) != ast.NodeFinal {
			continue
		}

		// The matcher sees the trail with a pending step carrying the
		// candidate edge's metadata and a zero output.
		probe := extendTrail(e.trail, *new(Out), he.data)

		for _, m := range g.arena.Matcher(he.to).Match(token, probe) {
			out = append(out, &explorer[Tok, Out]{
				node:  he.to,
				trail: extendTrail(e.trail, m, he.data),
			})
		}
	}
	return out
}

// canTerminate reports whether stopping here would be a match: the current
// node has an edge to the terminal sentinel.
func (e *explorer[Tok, Out]) canTerminate(g *graph[Tok, Out]) bool {
	return g.g.hasEdge(e.node, ast.TerminalNode)
}

// extendTrail copies the trail and appends one step. Trails are shared
// between sibling explorers, so extending must never write into the
// parent's backing array.
func extendTrail[Out comparable](t matcher.Trail[Out], item Out, data *matcher.EdgeData) matcher.Trail[Out] {
	nt := make(matcher.Trail[Out], len(t)+1)
	copy(nt, t)
	nt[len(t)] = matcher.TrailItem[Out]{Item: item, Edge: data}
	return nt
}

func trailEqual[Out comparable](a, b matcher.Trail[Out]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Item != b[i].Item || !a[i].Edge.Equal(b[i].Edge) {
			return false
		}
	}
	return true
}

// dedupBySignature keeps one explorer per (node, trail) signature. Several
// paths can reach the same node with the same trail; without this the
// explorer population explodes under alternation and loop fan-out while
// adding nothing to the result set.
func dedupBySignature[Tok any, Out comparable](list []*explorer[Tok, Out]) []*explorer[Tok, Out] {
	byNode := make(map[ast.NodeID][]*explorer[Tok, Out], len(list))
	out := list[:0:0]

	for _, e := range list {
		kept := byNode[e.node]
		if containsTrail(kept, e.trail) {
			continue
		}
		byNode[e.node] = append(kept, e)
		out = append(out, e)
	}
	return out
}

// dedupByTrail keeps one explorer per trail value, regardless of node:
// distinct accepting paths with identical output trails would freeze into
// identical matches.
func dedupByTrail[Tok any, Out comparable](list []*explorer[Tok, Out]) []*explorer[Tok, Out] {
	out := list[:0:0]
	for _, e := range list {
		if containsTrail(out, e.trail) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsTrail[Tok any, Out comparable](list []*explorer[Tok, Out], t matcher.Trail[Out]) bool {
	for _, e := range list {
		if trailEqual(e.trail, t) {
			return true
		}
	}
	return false
}
