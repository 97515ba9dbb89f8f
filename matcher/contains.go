package matcher

import (
	"errors"
	"fmt"

	"github.com/coregx/ahocorasick"
)

// ErrNoNeedles indicates ContainsAny was given an empty needle set.
var ErrNoNeedles = errors.New("ContainsAny requires at least one needle")

// ContainsAny returns a matcher over string tokens that yields every
// distinct needle found inside the token, leftmost occurrence first. It is
// the multi-candidate generalization of OutOf: a single token can produce
// several outputs, one per contained needle, and the simulation forks on
// each.
//
// The needle set is compiled once into an Aho-Corasick automaton, so
// matching stays linear in the token length regardless of how many needles
// there are.
func ContainsAny(needles ...string) (Matcher[string, string], error) {
	if len(needles) == 0 {
		return nil, ErrNoNeedles
	}

	builder := ahocorasick.NewBuilder()
	for _, n := range needles {
		builder.AddPattern([]byte(n))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("ContainsAny: %w", err)
	}

	return &containsAny{auto: auto, needles: needles}, nil
}

type containsAny struct {
	auto    *ahocorasick.Automaton
	needles []string
}

func (m *containsAny) Match(token string, _ Trail[string]) []string {
	haystack := []byte(token)

	var out []string
	seen := make(map[string]struct{})

	// Restart one byte after each hit so overlapping needles are found too.
	at := 0
	for at < len(haystack) {
		hit := m.auto.Find(haystack, at)
		if hit == nil {
			break
		}
		needle := token[hit.Start:hit.End]
		if _, dup := seen[needle]; !dup {
			seen[needle] = struct{}{}
			out = append(out, needle)
		}
		at = hit.Start + 1
	}
	return out
}

func (m *containsAny) String() string {
	return fmt.Sprintf("ContainsAny(%q)", m.needles)
}
