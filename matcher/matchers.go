package matcher

import (
	"fmt"
	"reflect"
	"strings"
)

// Eq returns a matcher that accepts a token equal to ref and yields the
// token unchanged.
func Eq[Tok comparable](ref Tok) Matcher[Tok, Tok] {
	return &eq[Tok]{ref: ref}
}

type eq[Tok comparable] struct {
	ref Tok
}

func (m *eq[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	if token == m.ref {
		return []Tok{token}
	}
	return nil
}

func (m *eq[Tok]) String() string {
	return fmt.Sprintf("Eq(%v)", m.ref)
}

// In returns a matcher that accepts a token equal to any of refs and yields
// the token unchanged.
func In[Tok comparable](refs ...Tok) Matcher[Tok, Tok] {
	return &in[Tok]{refs: refs}
}

type in[Tok comparable] struct {
	refs []Tok
}

func (m *in[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	for _, ref := range m.refs {
		if token == ref {
			return []Tok{token}
		}
	}
	return nil
}

func (m *in[Tok]) String() string {
	return fmt.Sprintf("In(%v)", m.refs)
}

// OutOf returns a matcher that accepts a token containing ref as a
// substring. It yields ref, not the token: the output of the match is the
// contained reference value.
func OutOf[Tok ~string](ref Tok) Matcher[Tok, Tok] {
	return &outOf[Tok]{ref: ref}
}

type outOf[Tok ~string] struct {
	ref Tok
}

func (m *outOf[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	if strings.Contains(string(token), string(m.ref)) {
		return []Tok{m.ref}
	}
	return nil
}

func (m *outOf[Tok]) String() string {
	return fmt.Sprintf("OutOf(%q)", string(m.ref))
}

// AttrEq returns a matcher that accepts a struct (or pointer-to-struct)
// token whose exported field name equals value, yielding the token
// unchanged. Tokens without such a field simply do not match.
func AttrEq[Tok comparable](name string, value any) Matcher[Tok, Tok] {
	return &attrEq[Tok]{name: name, value: value}
}

type attrEq[Tok comparable] struct {
	name  string
	value any
}

func (m *attrEq[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	v := reflect.Indirect(reflect.ValueOf(token))
	if v.Kind() != reflect.Struct {
		return nil
	}
	f := v.FieldByName(m.name)
	if !f.IsValid() || !f.CanInterface() {
		return nil
	}
	if reflect.DeepEqual(f.Interface(), m.value) {
		return []Tok{token}
	}
	return nil
}

func (m *attrEq[Tok]) String() string {
	return fmt.Sprintf("AttrEq(%s=%v)", m.name, m.value)
}

// KeyEq returns a matcher that accepts a map token holding key with a value
// equal to value, yielding the token unchanged. Non-map tokens and maps of
// an incompatible key type do not match.
func KeyEq[Tok comparable](key, value any) Matcher[Tok, Tok] {
	return &keyEq[Tok]{key: key, value: value}
}

type keyEq[Tok comparable] struct {
	key   any
	value any
}

func (m *keyEq[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	v := reflect.ValueOf(token)
	if v.Kind() != reflect.Map {
		return nil
	}
	k := reflect.ValueOf(m.key)
	if !k.IsValid() || !k.Type().AssignableTo(v.Type().Key()) {
		return nil
	}
	e := v.MapIndex(k)
	if !e.IsValid() {
		return nil
	}
	if reflect.DeepEqual(e.Interface(), m.value) {
		return []Tok{token}
	}
	return nil
}

func (m *keyEq[Tok]) String() string {
	return fmt.Sprintf("KeyEq(%v=%v)", m.key, m.value)
}

// Anything returns a wildcard matcher that accepts every token and yields
// it unchanged.
func Anything[Tok comparable]() Matcher[Tok, Tok] {
	return anything[Tok]{}
}

type anything[Tok comparable] struct{}

func (anything[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	return []Tok{token}
}

func (anything[Tok]) String() string {
	return "Anything()"
}

// RuneRange is an inclusive rune interval for RuneRanges.
type RuneRange struct {
	Lo, Hi rune
}

// RuneRanges returns a matcher over rune tokens that yields the token once
// per range containing it. Overlapping ranges therefore produce multiple
// outputs for a single token.
func RuneRanges[Tok ~rune](ranges ...RuneRange) Matcher[Tok, Tok] {
	return &runeRanges[Tok]{ranges: ranges}
}

type runeRanges[Tok ~rune] struct {
	ranges []RuneRange
}

func (m *runeRanges[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	var out []Tok
	for _, r := range m.ranges {
		if rune(token) >= r.Lo && rune(token) <= r.Hi {
			out = append(out, token)
		}
	}
	return out
}

func (m *runeRanges[Tok]) String() string {
	return fmt.Sprintf("RuneRanges(%v)", m.ranges)
}

// Test returns a matcher that runs an arbitrary predicate and yields the
// token unchanged when the predicate holds.
func Test[Tok comparable](test func(Tok) bool) Matcher[Tok, Tok] {
	if test == nil {
		panic("nsre/matcher: Test requires a non-nil predicate")
	}
	return &testMatcher[Tok]{test: test}
}

type testMatcher[Tok comparable] struct {
	test func(Tok) bool
}

func (m *testMatcher[Tok]) Match(token Tok, _ Trail[Tok]) []Tok {
	if m.test(token) {
		return []Tok{token}
	}
	return nil
}

func (m *testMatcher[Tok]) String() string {
	return "Test(...)"
}

// Not negates another matcher: it yields the original token, untransformed,
// exactly when the wrapped matcher yields nothing for it. The wrapped
// matcher's outputs are discarded either way.
func Not[Tok, Out comparable](m Matcher[Tok, Out]) Matcher[Tok, Tok] {
	if m == nil {
		panic("nsre/matcher: cannot negate a nil matcher")
	}
	return &not[Tok, Out]{inner: m}
}

type not[Tok, Out comparable] struct {
	inner Matcher[Tok, Out]
}

func (m *not[Tok, Out]) Match(token Tok, _ Trail[Tok]) []Tok {
	// The inner matcher sees an empty trail: its Out type need not agree
	// with the outer trail's and negation only cares about yes/no.
	if len(m.inner.Match(token, nil)) == 0 {
		return []Tok{token}
	}
	return nil
}

func (m *not[Tok, Out]) String() string {
	return fmt.Sprintf("Not(%v)", m.inner)
}
