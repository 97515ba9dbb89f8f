package nsre

import (
	"slices"

	"github.com/coregx/nsre/ast"
	"github.com/coregx/nsre/matcher"
)

// halfedge is one outgoing edge: the successor node and the capture
// metadata traversing the edge implies. data is nil for plain edges.
type halfedge struct {
	to   ast.NodeID
	data *matcher.EdgeData
}

// digraph is the explicit adjacency structure the pattern graph is built
// in. Successor lists keep insertion order, which makes compilation and
// matching deterministic; there is at most one edge per (from, to) pair
// and re-adding an edge replaces its metadata, so cycles (the AnyNumber
// self-loop) are just an ID appearing in its own successor list.
type digraph struct {
	succ map[ast.NodeID][]halfedge
	pred map[ast.NodeID][]ast.NodeID
}

func newDigraph() *digraph {
	return &digraph{
		succ: make(map[ast.NodeID][]halfedge),
		pred: make(map[ast.NodeID][]ast.NodeID),
	}
}

// addEdge inserts or replaces the edge from u to v. EdgeData payloads are
// immutable, so sharing a payload between edges is safe.
func (g *digraph) addEdge(u, v ast.NodeID, data *matcher.EdgeData) {
	for i, he := range g.succ[u] {
		if he.to == v {
			g.succ[u][i].data = data
			return
		}
	}
	g.succ[u] = append(g.succ[u], halfedge{to: v, data: data})
	g.pred[v] = append(g.pred[v], u)
}

// edgeData returns the metadata of the edge from u to v, or nil when the
// edge is absent or plain.
func (g *digraph) edgeData(u, v ast.NodeID) *matcher.EdgeData {
	for _, he := range g.succ[u] {
		if he.to == v {
			return he.data
		}
	}
	return nil
}

func (g *digraph) hasEdge(u, v ast.NodeID) bool {
	for _, he := range g.succ[u] {
		if he.to == v {
			return true
		}
	}
	return false
}

// successors returns the outgoing edges of u in insertion order. The
// returned slice is owned by the graph.
func (g *digraph) successors(u ast.NodeID) []halfedge {
	return g.succ[u]
}

// predecessors returns a copy of the incoming neighbors of u, safe to
// iterate while edges are being added.
func (g *digraph) predecessors(u ast.NodeID) []ast.NodeID {
	return slices.Clone(g.pred[u])
}

// removeNode deletes u and every edge touching it.
func (g *digraph) removeNode(u ast.NodeID) {
	for _, he := range g.succ[u] {
		g.pred[he.to] = deleteID(g.pred[he.to], u)
	}
	for _, p := range g.pred[u] {
		g.succ[p] = deleteEdge(g.succ[p], u)
	}
	delete(g.succ, u)
	delete(g.pred, u)
}

func deleteID(ids []ast.NodeID, id ast.NodeID) []ast.NodeID {
	return slices.DeleteFunc(ids, func(x ast.NodeID) bool { return x == id })
}

func deleteEdge(edges []halfedge, to ast.NodeID) []halfedge {
	return slices.DeleteFunc(edges, func(he halfedge) bool { return he.to == to })
}

// graph is a compiled pattern: the digraph plus the arena its node IDs
// refer to. After compilation every remaining node is a Final (or a
// sentinel) and the graph is immutable, so it is safe to share between
// concurrent Match calls.
type graph[Tok any, Out comparable] struct {
	arena *ast.Arena[Tok, Out]
	g     *digraph
}

// compileGraph expands the pattern tree rooted at root into a graph of
// Final nodes. It seeds Initial -> root -> Terminal and then repeatedly
// replaces one composite node with its content, rewiring the edges around
// it and preserving their capture metadata, until only Final nodes remain.
func compileGraph[Tok any, Out comparable](a *ast.Arena[Tok, Out], root ast.NodeID) *graph[Tok, Out] {
	g := newDigraph()
	g.addEdge(ast.InitialNode, root, nil)
	g.addEdge(root, ast.TerminalNode, nil)

	work := []ast.NodeID{root}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		switch a.Kind(n) {
		case ast.NodeFinal:
			// Leaf; nothing to expand.
		case ast.NodeConcatenation:
			work = expandConcatenation(g, a, n, work)
		case ast.NodeAlternation:
			work = expandAlternation(g, a, n, work)
		case ast.NodeMaybe:
			work = expandMaybe(g, a, n, work)
		case ast.NodeAnyNumber:
			work = expandAnyNumber(g, a, n, work)
		case ast.NodeCapture:
			work = expandCapture(g, a, n, work)
		}
	}

	return &graph[Tok, Out]{arena: a, g: g}
}

// expandConcatenation redirects incoming edges to the left statement, links
// left to right, and redirects outgoing edges from the right statement.
func expandConcatenation[Tok any, Out comparable](g *digraph, a *ast.Arena[Tok, Out], n ast.NodeID, work []ast.NodeID) []ast.NodeID {
	left, right := a.Left(n), a.Right(n)

	for _, p := range g.predecessors(n) {
		g.addEdge(p, left, g.edgeData(p, n))
	}
	g.addEdge(left, right, nil)
	for _, he := range slices.Clone(g.successors(n)) {
		g.addEdge(right, he.to, he.data)
	}

	g.removeNode(n)
	return append(work, left, right)
}

// expandAlternation duplicates incoming and outgoing edges onto both
// statements.
func expandAlternation[Tok any, Out comparable](g *digraph, a *ast.Arena[Tok, Out], n ast.NodeID, work []ast.NodeID) []ast.NodeID {
	left, right := a.Left(n), a.Right(n)

	for _, p := range g.predecessors(n) {
		data := g.edgeData(p, n)
		g.addEdge(p, left, data)
		g.addEdge(p, right, data)
	}
	for _, he := range slices.Clone(g.successors(n)) {
		g.addEdge(left, he.to, he.data)
		g.addEdge(right, he.to, he.data)
	}

	g.removeNode(n)
	return append(work, left, right)
}

// expandMaybe adds a bypass edge for every (predecessor, successor) pair
// (the zero-occurrence path) and routes the statement in between (the
// one-occurrence path).
func expandMaybe[Tok any, Out comparable](g *digraph, a *ast.Arena[Tok, Out], n ast.NodeID, work []ast.NodeID) []ast.NodeID {
	stmt := a.Statement(n)

	crossConnect(g, n)
	routeThrough(g, n, stmt)

	g.removeNode(n)
	return append(work, stmt)
}

// expandAnyNumber is expandMaybe plus a self-loop on the statement,
// enabling one to any number of occurrences.
func expandAnyNumber[Tok any, Out comparable](g *digraph, a *ast.Arena[Tok, Out], n ast.NodeID, work []ast.NodeID) []ast.NodeID {
	stmt := a.Statement(n)

	g.addEdge(stmt, stmt, nil)
	crossConnect(g, n)
	routeThrough(g, n, stmt)

	g.removeNode(n)
	return append(work, stmt)
}

// expandCapture appends the group to start_captures on edges into the
// statement and prepends it to stop_captures on edges out of it. A capture
// node has no bypass: its content occurs exactly once.
func expandCapture[Tok any, Out comparable](g *digraph, a *ast.Arena[Tok, Out], n ast.NodeID, work []ast.NodeID) []ast.NodeID {
	stmt := a.Statement(n)
	c := matcher.Capture{ID: uint32(n), Name: a.Name(n)}

	for _, p := range g.predecessors(n) {
		g.addEdge(p, stmt, withStartAppended(g.edgeData(p, n), c))
	}
	for _, he := range slices.Clone(g.successors(n)) {
		g.addEdge(stmt, he.to, withStopPrepended(he.data, c))
	}

	g.removeNode(n)
	return append(work, stmt)
}

// routeThrough connects all predecessors of n to stmt and stmt to all
// successors of n, carrying the existing edge metadata over unchanged.
func routeThrough(g *digraph, n, stmt ast.NodeID) {
	for _, p := range g.predecessors(n) {
		g.addEdge(p, stmt, g.edgeData(p, n))
	}
	for _, he := range slices.Clone(g.successors(n)) {
		g.addEdge(stmt, he.to, he.data)
	}
}

// crossConnect adds the zero-occurrence bypass edge for every
// (predecessor, successor) pair of n, merging the metadata of the two
// edges it replaces.
func crossConnect(g *digraph, n ast.NodeID) {
	preds := g.predecessors(n)
	succs := slices.Clone(g.successors(n))
	for _, p := range preds {
		in := g.edgeData(p, n)
		for _, he := range succs {
			g.addEdge(p, he.to, mergeEdgeData(in, he.data))
		}
	}
}

// mergeEdgeData joins the metadata of an incoming and an outgoing edge
// into the metadata of one bypass edge. A group that would be opened and
// closed on the same step is a no-op capture and is cancelled: it must not
// surface in results, and the replay stack would reject it.
func mergeEdgeData(in, out *matcher.EdgeData) *matcher.EdgeData {
	var start, stop []matcher.Capture
	if in != nil {
		start = append(start, in.StartCaptures...)
		stop = append(stop, in.StopCaptures...)
	}
	if out != nil {
		start = append(start, out.StartCaptures...)
		stop = append(stop, out.StopCaptures...)
	}

	cancel := 0
	for cancel < len(start) && cancel < len(stop) && start[cancel] == stop[cancel] {
		cancel++
	}
	if cancel > 0 {
		start = start[cancel:]
		stop = stop[:len(stop)-cancel]
	}

	return newEdgeData(start, stop)
}

func withStartAppended(d *matcher.EdgeData, c matcher.Capture) *matcher.EdgeData {
	var start, stop []matcher.Capture
	if d != nil {
		start = slices.Clone(d.StartCaptures)
		stop = d.StopCaptures
	}
	return newEdgeData(append(start, c), stop)
}

func withStopPrepended(d *matcher.EdgeData, c matcher.Capture) *matcher.EdgeData {
	var start, stop []matcher.Capture
	if d != nil {
		start = d.StartCaptures
		stop = d.StopCaptures
	}
	return newEdgeData(start, append([]matcher.Capture{c}, stop...))
}

// newEdgeData normalizes empty capture lists to a nil payload so that
// structurally empty metadata always compares equal.
func newEdgeData(start, stop []matcher.Capture) *matcher.EdgeData {
	if len(start) == 0 && len(stop) == 0 {
		return nil
	}
	if len(start) == 0 {
		start = nil
	}
	if len(stop) == 0 {
		stop = nil
	}
	return &matcher.EdgeData{StartCaptures: start, StopCaptures: stop}
}
