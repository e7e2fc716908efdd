package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Breaking Bad", "breaking bad"},
		{"articles dropped", "the matrix", "matrix"},
		{"article mid-string", "lord of the rings", "lord of rings"},
		{"punctuation to space", "spider-man: no way home!", "spider man no way home"},
		{"whitespace collapsed", "  avatar    2022  ", "avatar 2022"},
		{"hebrew prefix stripped", "הסרט אווטר", "סרט אווטר"},
		{"short hebrew word kept", "בא הם", "בא הם"},
		{"prefix stripped to fixpoint", "וברכה", "רכה"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.in)
			if got != c.want {
				t.Fatalf("Normalize(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Matrix (1999)",
		"אפשר את הסרט אווטר 2022?",
		"ששלום וברכה",
		"prison break season 3",
		"The    quick, brown; fox",
		"",
		"❤️👍",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"drops stop words", "the movie avatar", []string{"avatar"}},
		{"drops short tokens", "x game of thrones", []string{"thrones"}},
		{"keeps duplicates in order", "dune dune part two", []string{"dune", "dune", "part", "two"}},
		{"hebrew stop words", "יש את הסרט אווטר", []string{"אווטר"}},
		{"empty", "", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractKeywords(c.in)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("ExtractKeywords(%q) = %v; want %v", c.in, got, c.want)
			}
		})
	}
}

func TestKeywordSetDeduplicates(t *testing.T) {
	set := KeywordSet("dune dune part two")
	if len(set) != 3 {
		t.Fatalf("expected 3 distinct keywords, got %d: %v", len(set), set)
	}
	for _, want := range []string{"dune", "part", "two"} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected keyword %q in set", want)
		}
	}
}
