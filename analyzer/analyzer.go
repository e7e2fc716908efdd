// Package analyzer classifies free-text chat messages: is this noise, a
// possible content request, or a clear one — and what is it asking for.
package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"contentbot/types"
)

// Score weights and penalties. The values were tuned empirically against
// real group traffic; treat them as a set.
const (
	highPhraseScore    = 35
	mediumPhraseScore  = 20
	lowPhraseScore     = 15
	categoryScore      = 25
	noCategoryPenalty  = 5
	technicalScore     = 15
	casualPenalty      = 30
	longTextPenalty    = 15
	manyQuestionsLimit = 3
	manyQuestionsCost  = 10
	longTextLimit      = 200

	maxConfidence  = 95
	maxTitleWords  = 10
	minRequestLen  = 8
	minTokenCount  = 2
	spamDistinct   = 3
	spamMinLength  = 5
	mightBeScore   = 30
	categorizedMin = 15
)

var (
	emojiOnlyRe = regexp.MustCompile(`^[🫶❤️😘👍👌🔥💯⭐😊😎🎉🎊\s]*$`)
	mentionRe   = regexp.MustCompile(`@\w+`)

	// Explicit request constructions: verb, optional article, object.
	// Go's \b is ASCII-only so the Hebrew patterns avoid it.
	clearRequestRes = []*regexp.Regexp{
		regexp.MustCompile(`אפשר\s+(את\s+)?ה?(סרט|סדרה|משחק|ספר|תוכנה)`),
		regexp.MustCompile(`יש\s+(את\s+)?ה?(סרט|סדרה|משחק|ספר|תוכנה)`),
		regexp.MustCompile(`מחפש\s+(את\s+)?ה?(סרט|סדרה|משחק|ספר|תוכנה)`),
		regexp.MustCompile(`(can\s+i\s+get|do\s+you\s+have).+(movie|series|game|book|software)`),
		// Looser single-verb forms: bare ask plus any object word.
		regexp.MustCompile(`אפשר\s+[\p{L}\p{N}]+`),
		regexp.MustCompile(`יש\s+[\p{L}\p{N}]+`),
		regexp.MustCompile(`איפה\s+[\p{L}\p{N}]+`),
		regexp.MustCompile(`מחפש\s+[\p{L}\p{N}]+`),
		regexp.MustCompile(`looking\s+for\s+[\p{L}\p{N}]+`),
	}
)

// Analyzer scores and classifies messages against a fixed Lexicon. It holds
// no mutable state; every method is a pure function of its input and safe
// for concurrent use.
type Analyzer struct {
	lex Lexicon

	// title-phrase strip list, longest first so compound phrases are
	// removed before their prefixes
	stripPhrases []string
}

// New creates an Analyzer. A zero Lexicon falls back to DefaultLexicon.
func New(lex Lexicon) *Analyzer {
	if len(lex.HighPhrases) == 0 && len(lex.ImmediateFilters) == 0 {
		lex = DefaultLexicon()
	}

	strip := make([]string, 0, len(lex.HighPhrases)+len(lex.MediumPhrases)+len(lex.LowPhrases)+len(lex.TitleStopWords))
	strip = append(strip, lex.HighPhrases...)
	strip = append(strip, lex.MediumPhrases...)
	strip = append(strip, lex.LowPhrases...)
	strip = append(strip, lex.TitleStopWords...)
	sort.SliceStable(strip, func(i, j int) bool {
		return len(strip[i]) > len(strip[j])
	})

	return &Analyzer{lex: lex, stripPhrases: strip}
}

// CouldBeRequest is the fast rejection filter applied to every incoming
// message before any scoring work happens.
func (a *Analyzer) CouldBeRequest(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	if len([]rune(lower)) < minRequestLen {
		return false
	}
	if len(strings.Fields(lower)) < minTokenCount {
		return false
	}

	for _, filter := range a.lex.ImmediateFilters {
		if lower == filter || strings.HasPrefix(lower, filter) {
			return false
		}
	}

	if emojiOnlyRe.MatchString(text) {
		return false
	}

	if distinct := distinctRunes(lower); distinct <= spamDistinct && len([]rune(lower)) > spamMinLength {
		return false
	}

	if containsAny(lower, a.lex.RequestIndicators) {
		return true
	}
	if containsAny(lower, a.lex.ContentIndicators) {
		return true
	}
	return containsAny(lower, a.lex.KnownTitles)
}

// Score computes the additive request-intent score for a message. The three
// phrase tiers are mutually exclusive: only the highest matching tier
// counts. The result is floored at zero once, after all penalties.
func (a *Analyzer) Score(text string) int {
	lower := strings.ToLower(text)
	score := 0

	switch {
	case containsAny(lower, a.lex.HighPhrases):
		score += highPhraseScore
	case containsAny(lower, a.lex.MediumPhrases):
		score += mediumPhraseScore
	case containsAny(lower, a.lex.LowPhrases):
		score += lowPhraseScore
	}

	categoryFound := false
	for _, group := range a.lex.ScoreCategories {
		if containsAny(lower, group.Keywords) {
			score += categoryScore
			categoryFound = true
			break
		}
	}
	if !categoryFound {
		score -= noCategoryPenalty
	}

	if containsAny(lower, a.lex.TechnicalDetails) {
		score += technicalScore
	}

	for _, phrase := range a.lex.CasualPenalties {
		if strings.Contains(lower, phrase) {
			score -= casualPenalty
		}
	}

	if len([]rune(text)) > longTextLimit {
		score -= longTextPenalty
	}
	if strings.Count(text, "?") > manyQuestionsLimit {
		score -= manyQuestionsCost
	}

	if score < 0 {
		score = 0
	}
	return score
}

// Analyze runs the detailed classification pass over a message whose score
// was already computed, producing the full IntentAnalysis.
func (a *Analyzer) Analyze(text string, score int) types.IntentAnalysis {
	lower := strings.ToLower(text)

	category := types.CategoryGeneral
	for _, group := range a.lex.AnalyzeCategories {
		if containsAny(lower, group.Keywords) {
			category = group.Category
			break
		}
	}

	isClear := false
	for _, re := range clearRequestRes {
		if re.MatchString(lower) {
			isClear = true
			break
		}
	}

	mightBe := (score >= categorizedMin && category != types.CategoryGeneral) || score >= mightBeScore

	confidence := score
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return types.IntentAnalysis{
		RawScore:       score,
		IsClearRequest: isClear,
		MightBeRequest: mightBe,
		Category:       category,
		Confidence:     confidence,
		Title:          a.ExtractTitle(text),
	}
}

// ExtractTitle produces a best-effort provisional title: request phrasing
// and filler words stripped, capped at ten words. Falls back to the trimmed
// message so a clear request never ends up with an empty title.
func (a *Analyzer) ExtractTitle(text string) string {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = mentionRe.ReplaceAllString(cleaned, "")

	for _, phrase := range a.stripPhrases {
		cleaned = strings.ReplaceAll(cleaned, phrase+" ", " ")
	}

	words := strings.Fields(cleaned)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	title := strings.TrimRight(strings.Join(words, " "), "?!. ")
	if title == "" {
		title = strings.TrimRight(strings.TrimSpace(text), "?!. ")
	}
	return title
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func distinctRunes(text string) int {
	seen := make(map[rune]struct{})
	for _, r := range text {
		seen[r] = struct{}{}
	}
	return len(seen)
}
