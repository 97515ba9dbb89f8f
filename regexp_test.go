package nsre

import (
	"errors"
	"testing"

	"github.com/coregx/nsre/ast"
	"github.com/coregx/nsre/matcher"
)

// compileRunes builds and compiles a rune pattern, failing the test on
// compile errors.
func compileRunes(t *testing.T, build func(a *ast.Arena[rune, rune]) ast.NodeID) *RegExp[rune, rune] {
	t.Helper()
	a := ast.NewArena[rune, rune]()
	re, err := FromAST(a, build(a))
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}
	return re
}

// TestMatch_Literal tests whole-sequence matching of a plain literal
func TestMatch_Literal(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		return Literal(a, "ab")
	})

	tests := []struct {
		input string
		want  int
	}{
		{"ab", 1},
		{"zz", 0},
		{"abx", 0}, // leftover input is a non-match
		{"a", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ms := re.Match(Runes(tt.input))
			if len(ms) != tt.want {
				t.Errorf("Match(%q) produced %d matches, want %d", tt.input, len(ms), tt.want)
			}
			if tt.want == 1 && ms.First().Joined() != tt.input {
				t.Errorf("Match(%q) trail = %q", tt.input, ms.First().Joined())
			}
		})
	}
}

// TestMatch_RepeatRange tests bounded repetition: 'a' followed by 1 to 5 'b'
func TestMatch_RepeatRange(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		bs, err := a.RepeatRange(a.Final(matcher.Eq('b')), 1, 5)
		if err != nil {
			t.Fatalf("RepeatRange: %v", err)
		}
		return a.Concat(a.Final(matcher.Eq('a')), bs)
	})

	tests := []struct {
		input string
		want  int
	}{
		{"ab", 1},
		{"abb", 1},
		{"abbbbb", 1},
		{"a", 0},       // below the lower bound
		{"abbbbbb", 0}, // above the upper bound
		{"bb", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ms := re.Match(Runes(tt.input))
			if len(ms) != tt.want {
				t.Fatalf("Match(%q) produced %d matches, want %d", tt.input, len(ms), tt.want)
			}
			if tt.want == 1 {
				if got := ms.First().Joined(); got != tt.input {
					t.Errorf("Match(%q) trail = %q, want the input back", tt.input, got)
				}
				if ms.First().StartPos != 0 {
					t.Errorf("Match(%q) StartPos = %d, want 0", tt.input, ms.First().StartPos)
				}
			}
		})
	}
}

// TestMatch_Alternation tests branching: (a|b)c
func TestMatch_Alternation(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		alt := a.Altern(a.Final(matcher.Eq('a')), a.Final(matcher.Eq('b')))
		return a.Concat(alt, a.Final(matcher.Eq('c')))
	})

	for input, want := range map[string]int{"ac": 1, "bc": 1, "cc": 0, "a": 0} {
		if got := len(re.Match(Runes(input))); got != want {
			t.Errorf("Match(%q) produced %d matches, want %d", input, got, want)
		}
	}
}

// TestMatch_KleeneMonotonic tests that an unbounded repetition accepts every
// count above its mandatory prefix.
func TestMatch_KleeneMonotonic(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		rep, err := a.RepeatAtLeast(a.Final(matcher.Eq('b')), 2)
		if err != nil {
			t.Fatalf("RepeatAtLeast: %v", err)
		}
		return rep
	})

	for input, want := range map[string]int{"b": 0, "bb": 1, "bbb": 1, "bbbbbb": 1} {
		if got := len(re.Match(Runes(input))); got != want {
			t.Errorf("Match(%q) produced %d matches, want %d", input, got, want)
		}
	}
}

// TestMatch_RepeatEquivalence tests that Repeat(x, 3) accepts exactly what
// the explicit three-fold concatenation accepts.
func TestMatch_RepeatEquivalence(t *testing.T) {
	folded := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		rep, err := a.Repeat(a.Final(matcher.Eq('b')), 3)
		if err != nil {
			t.Fatalf("Repeat: %v", err)
		}
		return rep
	})
	explicit := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		b1 := a.Final(matcher.Eq('b'))
		b2 := a.Final(matcher.Eq('b'))
		b3 := a.Final(matcher.Eq('b'))
		return a.Concat(a.Concat(b1, b2), b3)
	})

	for _, input := range []string{"bb", "bbb", "bbbb", ""} {
		f := len(folded.Match(Runes(input)))
		e := len(explicit.Match(Runes(input)))
		if f != e {
			t.Errorf("Match(%q): folded %d matches, explicit %d", input, f, e)
		}
	}
}

// TestMatch_ConcatAssociativity tests that concatenation grouping does not
// change the accepted language.
func TestMatch_ConcatAssociativity(t *testing.T) {
	leftAssoc := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		x, y, z := a.Final(matcher.Eq('a')), a.Final(matcher.Eq('b')), a.Final(matcher.Eq('c'))
		return a.Concat(a.Concat(x, y), z)
	})
	rightAssoc := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		x, y, z := a.Final(matcher.Eq('a')), a.Final(matcher.Eq('b')), a.Final(matcher.Eq('c'))
		return a.Concat(x, a.Concat(y, z))
	})

	for _, input := range []string{"abc", "ab", "abcd", ""} {
		l := len(leftAssoc.Match(Runes(input)))
		r := len(rightAssoc.Match(Runes(input)))
		if l != r {
			t.Errorf("Match(%q): left-assoc %d matches, right-assoc %d", input, l, r)
		}
	}
}

// TestCompileDeterminism tests that compiling the same tree twice yields
// patterns with identical match behavior.
func TestCompileDeterminism(t *testing.T) {
	a := ast.NewArena[rune, rune]()
	bs, err := a.RepeatRange(a.Final(matcher.Eq('b')), 1, 3)
	if err != nil {
		t.Fatalf("RepeatRange: %v", err)
	}
	root := a.Concat(a.Final(matcher.Eq('a')), bs)

	re1, err := FromAST(a, root)
	if err != nil {
		t.Fatalf("first FromAST: %v", err)
	}
	re2, err := FromAST(a, root)
	if err != nil {
		t.Fatalf("second FromAST: %v", err)
	}

	for _, input := range []string{"ab", "abb", "abbb", "abbbb", "a", ""} {
		m1 := re1.Match(Runes(input))
		m2 := re2.Match(Runes(input))
		if len(m1) != len(m2) {
			t.Errorf("Match(%q): %d matches vs %d", input, len(m1), len(m2))
			continue
		}
		for i := range m1 {
			if m1[i].Joined() != m2[i].Joined() {
				t.Errorf("Match(%q)[%d]: trail %q vs %q", input, i, m1[i].Joined(), m2[i].Joined())
			}
		}
	}
}

// TestMatch_EmptyInput tests that an all-optional pattern accepts the empty
// sequence with an empty trail.
func TestMatch_EmptyInput(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		return a.Maybe(a.Final(matcher.Eq('a')))
	})

	ms := re.Match(nil)
	if len(ms) != 1 {
		t.Fatalf("Match(empty) produced %d matches, want 1", len(ms))
	}
	if len(ms.First().Trail) != 0 {
		t.Errorf("Match(empty) trail = %v, want empty", ms.First().Trail)
	}
}

// TestMatchWithConfig_Deduplicate tests that disabling state merging does
// not change the set of distinct matches.
func TestMatchWithConfig_Deduplicate(t *testing.T) {
	// Both alternation branches accept 'a', so the simulation forks into
	// identical states immediately.
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		alt := a.Altern(a.Final(matcher.Eq('a')), a.Final(matcher.Eq('a')))
		return a.Concat(alt, a.Final(matcher.Eq('b')))
	})

	cfg := DefaultMatchConfig()
	cfg.Deduplicate = false

	with := re.Match(Runes("ab"))
	without := re.MatchWithConfig(Runes("ab"), cfg)

	if len(with) != 1 || len(without) != 1 {
		t.Errorf("got %d matches with dedup, %d without, want 1 and 1", len(with), len(without))
	}
}

// TestMatch_MultiYield tests that a matcher producing several outputs for
// one token forks the simulation into one match per output.
func TestMatch_MultiYield(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		return a.Final(caseFold{})
	})

	ms := re.Match(Runes("a"))
	if len(ms) != 2 {
		t.Fatalf("Match produced %d matches, want 2", len(ms))
	}
	got := map[string]bool{}
	for _, m := range ms {
		got[m.Joined()] = true
	}
	if !got["a"] || !got["A"] {
		t.Errorf("Match trails = %v, want both cases", got)
	}
}

// caseFold yields the token and its upper-case form.
type caseFold struct{}

func (caseFold) Match(token rune, _ matcher.Trail[rune]) []rune {
	if token >= 'a' && token <= 'z' {
		return []rune{token, token - 'a' + 'A'}
	}
	return []rune{token}
}

func (caseFold) String() string { return "caseFold" }

// TestMatch_StructTokens tests a pattern over structured records instead of
// characters.
func TestMatch_StructTokens(t *testing.T) {
	type event struct {
		Type string
		User string
	}

	a := ast.NewArena[event, event]()
	views, err := a.Capture("views", a.AnyNumber(a.Final(matcher.AttrEq[event]("Type", "view"))))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	root := a.Concat(
		a.Concat(a.Final(matcher.AttrEq[event]("Type", "login")), views),
		a.Final(matcher.AttrEq[event]("Type", "logout")),
	)
	re, err := FromAST(a, root)
	if err != nil {
		t.Fatalf("FromAST: %v", err)
	}

	session := []event{
		{Type: "login", User: "amy"},
		{Type: "view", User: "amy"},
		{Type: "view", User: "amy"},
		{Type: "logout", User: "amy"},
	}
	ms := re.Match(session)
	if len(ms) != 1 {
		t.Fatalf("Match produced %d matches, want 1", len(ms))
	}
	v := ms.Child("views")
	if v == nil {
		t.Fatal("capture views missing")
	}
	if len(v.Trail) != 2 || v.StartPos != 1 {
		t.Errorf("views: trail %v StartPos %d, want 2 events from index 1", v.Trail, v.StartPos)
	}

	noViews := []event{
		{Type: "login", User: "amy"},
		{Type: "logout", User: "amy"},
	}
	ms = re.Match(noViews)
	if len(ms) != 1 {
		t.Fatalf("Match without views produced %d matches, want 1", len(ms))
	}
	if ms.Child("views") != nil {
		t.Error("zero-occurrence capture must not surface as a child")
	}
}

// TestFromAST_InvalidRoot tests that compiling an unknown node ID fails
func TestFromAST_InvalidRoot(t *testing.T) {
	a := ast.NewArena[rune, rune]()
	if _, err := FromAST(a, ast.InvalidNode); !errors.Is(err, ast.ErrInvalidNode) {
		t.Errorf("FromAST(InvalidNode) error = %v, want ErrInvalidNode", err)
	}
}
