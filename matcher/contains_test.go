package matcher

import (
	"errors"
	"reflect"
	"testing"
)

// TestContainsAny tests multi-needle containment matching
func TestContainsAny(t *testing.T) {
	tests := []struct {
		name    string
		needles []string
		token   string
		want    []string
	}{
		{"single hit", []string{"foo", "bar"}, "xfoox", []string{"foo"}},
		{"two hits in scan order", []string{"foo", "bar"}, "xfoobarx", []string{"foo", "bar"}},
		{"no hit", []string{"foo", "bar"}, "bazqux", nil},
		{"repeated needle yields once", []string{"foo"}, "foofoo", []string{"foo"}},
		{"overlapping needles both found", []string{"ab", "ba"}, "aba", []string{"ab", "ba"}},
		{"empty token", []string{"foo"}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ContainsAny(tt.needles...)
			if err != nil {
				t.Fatalf("ContainsAny(%q) error: %v", tt.needles, err)
			}
			got := m.Match(tt.token, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

// TestContainsAny_NoNeedles tests that an empty needle set is rejected
func TestContainsAny_NoNeedles(t *testing.T) {
	_, err := ContainsAny()
	if !errors.Is(err, ErrNoNeedles) {
		t.Errorf("ContainsAny() error = %v, want ErrNoNeedles", err)
	}
}
