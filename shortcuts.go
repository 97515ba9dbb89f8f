package nsre

import (
	"github.com/zostay/go-std/slices"

	"github.com/coregx/nsre/ast"
	"github.com/coregx/nsre/matcher"
)

// Shortcuts for patterns over character tokens. They cover the common case
// of matching rune sequences without spelling out one Final per character.

// Runes converts a string into the rune sequence the engine matches
// against.
func Runes(s string) []rune {
	return []rune(s)
}

// Literal builds the concatenation of one equality leaf per rune of s.
// The string must not be empty: an empty pattern has no node to return.
func Literal(a *ast.Arena[rune, rune], s string) ast.NodeID {
	if s == "" {
		panic("nsre: Literal requires a non-empty string")
	}
	nodes := slices.Map([]rune(s), func(r rune) ast.NodeID {
		return a.Final(matcher.Eq(r))
	})
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = a.Concat(out, n)
	}
	return out
}

// Anything builds a pattern matching any run of tokens, including the
// empty one. Combined with captures it splits sequences around literals:
//
//	user, _ := a.Capture("user", nsre.Anything(a))
//	domain, _ := a.Capture("domain", nsre.Anything(a))
//	root := a.Concat(a.Concat(user, nsre.Literal(a, "@")), domain)
func Anything(a *ast.Arena[rune, rune]) ast.NodeID {
	return a.AnyNumber(a.Final(matcher.Anything[rune]()))
}
