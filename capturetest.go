package nsre

import "github.com/coregx/nsre/matcher"

// CaptureTest returns a matcher whose predicate sees, besides the token
// under test, the output captured so far on this parse: one trail per
// capture name, taken from the first occurrence of the group (nested
// groups are flattened in). This allows patterns such as "a token whose
// field equals the one captured three steps ago".
//
// It lives in this package rather than matcher because deciding what has
// been captured requires replaying the trail the way result extraction
// does.
func CaptureTest[Tok comparable](test func(token Tok, captures map[string][]Tok) bool) matcher.Matcher[Tok, Tok] {
	if test == nil {
		panic("nsre: CaptureTest requires a non-nil predicate")
	}
	return &captureTest[Tok]{test: test}
}

type captureTest[Tok comparable] struct {
	test func(token Tok, captures map[string][]Tok) bool
}

func (m *captureTest[Tok]) Match(token Tok, trail matcher.Trail[Tok]) []Tok {
	captures := make(map[string][]Tok)
	collectCaptures(replayTrail(trail, 0), captures)

	if m.test(token, captures) {
		return []Tok{token}
	}
	return nil
}

func (m *captureTest[Tok]) String() string {
	return "CaptureTest(...)"
}

func collectCaptures[Out comparable](b *matchBuilder[Out], captures map[string][]Out) {
	for name, kids := range b.children {
		captures[name] = kids[0].trail
		collectCaptures(kids[0], captures)
	}
}
