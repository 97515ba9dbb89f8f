// Package nsre implements regular-expression matching over sequences of
// arbitrary tokens ("non-string regular expressions").
//
// A pattern is a tree of ast nodes over matcher leaves: concatenation,
// alternation, bounded and unbounded repetition, and named capture groups.
// FromAST compiles the tree once into a directed graph; Match then
// simulates every viable parse of an input sequence simultaneously,
// breadth first and without backtracking, and returns the accepted paths
// as hierarchical Match values with named capture spans.
//
// Basic usage:
//
//	// 'a' followed by 1 to 5 'b'
//	a := ast.NewArena[rune, rune]()
//	bs, _ := a.RepeatRange(a.Final(matcher.Eq('b')), 1, 5)
//	re, _ := nsre.FromAST(a, a.Concat(a.Final(matcher.Eq('a')), bs))
//
//	matches := re.Match(nsre.Runes("abb"))
//	// len(matches) == 1, matches[0].Trail == []rune("abb")
//
// Tokens do not have to be characters: any type works as long as the
// matchers in use know how to test it. The engine is generic over the
// token type Tok and the matcher output type Out; Out must be comparable
// because identical parse states are merged by comparing trails.
//
// A compiled RegExp is immutable and safe for concurrent Match calls;
// every call owns its own simulation state.
package nsre

import (
	"github.com/zostay/go-std/slices"

	"github.com/coregx/nsre/ast"
)

// RegExp is a compiled pattern. Create one with FromAST; the zero value is
// not usable.
type RegExp[Tok any, Out comparable] struct {
	graph *graph[Tok, Out]
}

// FromAST compiles the pattern tree rooted at root into a RegExp. The tree
// is deep-copied first, so the caller's nodes keep their identity and the
// same arena can compile to several independent patterns. Compiling the
// same tree twice yields graphs accepting identical match sets.
func FromAST[Tok any, Out comparable](a *ast.Arena[Tok, Out], root ast.NodeID) (*RegExp[Tok, Out], error) {
	if !a.Contains(root) {
		return nil, ast.ErrInvalidNode
	}
	return &RegExp[Tok, Out]{graph: compileGraph(a, a.Copy(root))}, nil
}

// MatchConfig controls one match call.
type MatchConfig struct {
	// ConsumeAll requires the whole input to be consumed. When false, the
	// longest prefix with at least one accepting parse is matched instead.
	ConsumeAll bool

	// Deduplicate merges identical parse states after every token. It
	// bounds the explorer population and never changes the set of
	// distinct matches; disabling it is a diagnostic measure only.
	Deduplicate bool
}

// DefaultMatchConfig returns the default matching configuration:
// whole-input matching with state de-duplication.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		ConsumeAll:  true,
		Deduplicate: true,
	}
}

// Match returns every distinct parse of the whole sequence, or an empty
// list when the pattern does not match. A pattern whose matchers only ever
// yield one output behaves like a classic regex and produces 0 or 1
// matches; multi-yield matchers can produce several.
func (re *RegExp[Tok, Out]) Match(seq []Tok) MatchList[Out] {
	return re.MatchWithConfig(seq, DefaultMatchConfig())
}

// MatchPrefix matches the longest prefix of the sequence that the pattern
// accepts, leaving the remainder unconsumed.
func (re *RegExp[Tok, Out]) MatchPrefix(seq []Tok) MatchList[Out] {
	cfg := DefaultMatchConfig()
	cfg.ConsumeAll = false
	return re.MatchWithConfig(seq, cfg)
}

// MatchWithConfig matches with explicit configuration.
func (re *RegExp[Tok, Out]) MatchWithConfig(seq []Tok, cfg MatchConfig) MatchList[Out] {
	return re.match(seq, cfg, 0)
}

// Search attempts a longest-prefix match at every start offset of the
// sequence and returns the first match found at each matching offset, with
// StartPos set to the offset. Overlapping occurrences are all reported.
func (re *RegExp[Tok, Out]) Search(seq []Tok) MatchList[Out] {
	cfg := DefaultMatchConfig()
	cfg.ConsumeAll = false

	var out MatchList[Out]
	for i := range seq {
		if ms := re.match(seq[i:], cfg, i); len(ms) > 0 {
			out = append(out, ms[0])
		}
	}
	return out
}

func (re *RegExp[Tok, Out]) match(seq []Tok, cfg MatchConfig, base int) MatchList[Out] {
	generation := []*explorer[Tok, Out]{{node: ast.InitialNode}}

	// One generation of explorers is recorded per consumed token so that
	// prefix matching can look back at earlier acceptance points.
	var generations [][]*explorer[Tok, Out]

	for _, token := range seq {
		var next []*explorer[Tok, Out]
		for _, e := range generation {
			next = append(next, e.advance(re.graph, token)...)
		}
		if cfg.Deduplicate {
			next = dedupBySignature(next)
		}
		generation = next

		// A dead generation halts the simulation; recorded generations
		// remain examinable for partial acceptance below.
		if len(generation) == 0 {
			break
		}
		generations = append(generations, generation)
	}

	if !cfg.ConsumeAll && len(generations) > 0 {
		// Scan backward through the recorded generations and keep the
		// latest one (longest prefix) with an accepting explorer.
		for i := len(generations) - 1; i >= 0; i-- {
			generation = accepting(re.graph, generations[i])
			if len(generation) > 0 {
				break
			}
		}
	} else {
		generation = accepting(re.graph, generation)
	}

	terminal := dedupByTrail(generation)

	return slices.Map(terminal, func(e *explorer[Tok, Out]) *Match[Out] {
		return replayTrail(e.trail, base).toMatch()
	})
}

func accepting[Tok any, Out comparable](g *graph[Tok, Out], list []*explorer[Tok, Out]) []*explorer[Tok, Out] {
	out := list[:0:0]
	for _, e := range list {
		if e.canTerminate(g) {
			out = append(out, e)
		}
	}
	return out
}
