// Package textnorm holds the text normalization and keyword extraction
// shared by the intent analyzer and the similarity engine. Both sides must
// see the exact same canonical form or comparison results drift.
package textnorm

import (
	"regexp"
	"strings"
)

// EnglishArticles are dropped entirely during normalization.
var EnglishArticles = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
}

// HebrewPrefixes are the single-letter prefixes stripped from the front of
// words longer than two runes.
var HebrewPrefixes = map[rune]struct{}{
	'ה': {}, 'ו': {}, 'ב': {}, 'ל': {}, 'מ': {}, 'כ': {}, 'ש': {},
}

// StopWords is the fixed Hebrew+English stop-word set used by keyword
// extraction: articles, conjunctions, and generic category nouns that carry
// no identity ("the series", "הסרט" and friends).
var StopWords = map[string]struct{}{
	// Hebrew function words
	"את": {}, "של": {}, "על": {}, "עם": {}, "אל": {}, "מן": {}, "או": {},
	"אבל": {}, "כי": {}, "אם": {}, "גם": {}, "כל": {}, "יש": {}, "לא": {},
	"זה": {}, "היא": {}, "הוא": {}, "מה": {}, "איך": {}, "למה": {},
	"איפה": {}, "מתי": {}, "כמה": {},
	// Hebrew generic category nouns
	"הסדרה": {}, "הסרט": {}, "המשחק": {}, "הספר": {}, "האפליקציה": {}, "התוכנה": {},
	// English function words
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {},
	// English generic category nouns
	"series": {}, "movie": {}, "film": {}, "game": {}, "book": {},
	"app": {}, "application": {}, "software": {},
}

var (
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	tokenRe   = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Normalize produces the canonical comparison form of a string: lower-cased,
// punctuation collapsed to spaces, English articles dropped, Hebrew prefixes
// stripped. Idempotent: Normalize(Normalize(s)) == Normalize(s). To keep
// that guarantee, prefix stripping runs to a fixpoint per word instead of a
// single pass.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	cleaned := nonWordRe.ReplaceAllString(lowered, " ")

	words := strings.Fields(cleaned)
	out := make([]string, 0, len(words))
	for _, word := range words {
		if _, isArticle := EnglishArticles[word]; isArticle {
			continue
		}
		word = stripHebrewPrefixes(word)
		if word != "" {
			out = append(out, word)
		}
	}
	return strings.Join(out, " ")
}

// stripHebrewPrefixes removes leading single-letter prefixes while the word
// stays longer than two runes.
func stripHebrewPrefixes(word string) string {
	runes := []rune(word)
	for len(runes) > 2 {
		if _, ok := HebrewPrefixes[runes[0]]; !ok {
			break
		}
		runes = runes[1:]
	}
	return string(runes)
}

// ExtractKeywords tokenizes text on word boundaries, lower-cases, and drops
// tokens shorter than two runes or present in StopWords. Order follows the
// original token order and duplicates are retained; callers needing set
// semantics must dedupe themselves.
func ExtractKeywords(text string) []string {
	words := tokenRe.FindAllString(strings.ToLower(text), -1)
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) < 2 {
			continue
		}
		if _, stop := StopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// KeywordSet returns the deduplicated keyword set of text.
func KeywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, keyword := range ExtractKeywords(text) {
		set[keyword] = struct{}{}
	}
	return set
}
