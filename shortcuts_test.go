package nsre

import (
	"testing"

	"github.com/coregx/nsre/ast"
)

// TestRunes tests string-to-token conversion
func TestRunes(t *testing.T) {
	got := Runes("héllo")
	if len(got) != 5 || got[1] != 'é' {
		t.Errorf("Runes = %v", got)
	}
	if len(Runes("")) != 0 {
		t.Error("Runes(\"\") not empty")
	}
}

// TestLiteral tests the per-rune concatenation builder
func TestLiteral(t *testing.T) {
	t.Run("single rune", func(t *testing.T) {
		a := ast.NewArena[rune, rune]()
		id := Literal(a, "x")
		if a.Kind(id) != ast.NodeFinal {
			t.Errorf("Literal(\"x\") kind = %v, want Final", a.Kind(id))
		}
	})

	t.Run("matches exactly itself", func(t *testing.T) {
		re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
			return Literal(a, "abc")
		})
		if len(re.Match(Runes("abc"))) != 1 {
			t.Error("Literal does not match its own string")
		}
		for _, input := range []string{"ab", "abcd", "abd", ""} {
			if len(re.Match(Runes(input))) != 0 {
				t.Errorf("Literal matched %q", input)
			}
		}
	})

	t.Run("empty string panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Literal(\"\") did not panic")
			}
		}()
		Literal(ast.NewArena[rune, rune](), "")
	})
}

// TestAnythingPattern tests the zero-or-more wildcard helper
func TestAnythingPattern(t *testing.T) {
	re := compileRunes(t, func(a *ast.Arena[rune, rune]) ast.NodeID {
		return Anything(a)
	})

	for _, input := range []string{"", "a", "anything at all"} {
		if len(re.Match(Runes(input))) != 1 {
			t.Errorf("Anything did not match %q", input)
		}
	}
}
