package util

import (
	"sort"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	testCases := []struct {
		s1, s2   string
		expected bool
	}{
		{"Batman #2.cbz", "Batman #10.cbz", true},
		{"Batman #10.cbz", "Batman #2.cbz", false},
		{"Saga 001.cbz", "Saga 002.cbz", true},
		{"Saga 1.cbz", "Saga 1.5.cbz", true},
		{"Saga 1.5.cbz", "Saga 2.cbz", true},
		{"a", "B", true},
		{"file", "file1", true},
		{"file1", "file", false},
	}
	for _, tc := range testCases {
		if result := NaturalLess(tc.s1, tc.s2); result != tc.expected {
			t.Errorf("NaturalLess(%q, %q) = %v; want %v", tc.s1, tc.s2, result, tc.expected)
		}
	}
}

func TestNaturalLess_Equal(t *testing.T) {
	for _, s := range []string{"chapter 1", "Batman #001.cbz", "v1.0"} {
		if NaturalLess(s, s) {
			t.Errorf("NaturalLess(%q, %q) = true; want false", s, s)
		}
	}
}

func TestNaturalLess_Sort(t *testing.T) {
	files := []string{"X-Men 10.cbz", "X-Men 2.cbz", "x-men 1.cbz", "X-Men 1.5.cbz"}
	sort.SliceStable(files, func(i, j int) bool { return NaturalLess(files[i], files[j]) })

	expected := []string{"x-men 1.cbz", "X-Men 1.5.cbz", "X-Men 2.cbz", "X-Men 10.cbz"}
	for i := range expected {
		if files[i] != expected[i] {
			t.Fatalf("unexpected order: got %v, want %v", files, expected)
		}
	}
}
