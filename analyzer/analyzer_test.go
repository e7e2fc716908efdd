package analyzer

import (
	"strings"
	"testing"

	"contentbot/types"
)

func TestCouldBeRequest(t *testing.T) {
	a := New(DefaultLexicon())

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"too short", "hi", false},
		{"single token", "avatarrrrrrrr", false},
		{"thanks phrase", "thanks so much", false},
		{"hebrew thanks", "תודה רבה אחי", false},
		{"casual greeting", "שלום איך הולך?", false},
		{"emoji only", "🔥🔥🔥 👍👍", false},
		{"repeated characters", "חחחחחחחחחח חח", false},
		{"explicit english request", "can I get the movie Avatar 2022", true},
		{"explicit hebrew request", "אפשר את הסרט אווטר 2022?", true},
		{"content word only", "ראיתי סרט מעניין אתמול", true},
		{"franchise token only", "prison break תזכורת לכולם", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.CouldBeRequest(c.text); got != c.want {
				t.Fatalf("CouldBeRequest(%q) = %v; want %v", c.text, got, c.want)
			}
		})
	}
}

func TestScoreTiersAreExclusive(t *testing.T) {
	a := New(DefaultLexicon())

	// "אפשר את ה" matches the high tier and also contains the medium-tier
	// word "אפשר"; only the high tier may count.
	withCategory := a.Score("אפשר את הסרט החדש")
	withoutHigh := a.Score("אפשר סתם משהו")

	if withCategory < 35+25 {
		t.Errorf("high tier + category should reach 60, got %d", withCategory)
	}
	// medium tier (20) minus unclear-category penalty (5)
	if withoutHigh != 20-5 {
		t.Errorf("medium-only message should score 15, got %d", withoutHigh)
	}
}

func TestScoreScenarioHebrewMovie(t *testing.T) {
	a := New(DefaultLexicon())
	score := a.Score("אפשר את הסרט אווטר 2022?")
	if score < 75 {
		t.Fatalf("expected at least 75 (35 phrase + 25 category + 15 year), got %d", score)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	a := New(DefaultLexicon())
	texts := []string{
		"",
		"מה שלומך איך אתה מה קורה אני חושב לדעתי",
		strings.Repeat("בלה ", 100),
		"????? ????? ?????",
	}
	for _, text := range texts {
		if got := a.Score(text); got < 0 {
			t.Errorf("Score(%q) = %d; must not be negative", text, got)
		}
	}
}

func TestScorePenalties(t *testing.T) {
	a := New(DefaultLexicon())

	base := a.Score("יש לכם את הסרט אווטר")
	casual := a.Score("יש לכם את הסרט אווטר? אני חושב שכן")
	if casual >= base {
		t.Errorf("casual phrase should lower the score: base %d, casual %d", base, casual)
	}

	long := "אפשר את הסרט " + strings.Repeat("אווטר ", 40)
	if a.Score(long) >= a.Score("אפשר את הסרט אווטר") {
		t.Error("overlong message should score lower")
	}

	questions := a.Score("אפשר את הסרט אווטר???? באמת????")
	noQuestions := a.Score("אפשר את הסרט אווטר")
	if questions >= noQuestions {
		t.Errorf("question-mark pile should lower the score: %d vs %d", questions, noQuestions)
	}
}

func TestAnalyzeCategories(t *testing.T) {
	a := New(DefaultLexicon())

	cases := []struct {
		text string
		want types.Category
	}{
		{"אפשר את הסרט אווטר", types.CategorySeries},
		{"מחפש את התוכנה photoshop", types.CategorySoftware},
		{"יש את המשחק gta בsteam", types.CategoryGaming},
		{"מחפש קורס python טוב", types.CategoryEducation},
		{"יש את הספר הארי פוטר pdf", types.CategoryBooks},
		{"אפשר את האלבום החדש", types.CategoryMusic},
		{"אפשר עזרה עם משהו", types.CategoryGeneral},
	}

	for _, c := range cases {
		analysis := a.Analyze(c.text, a.Score(c.text))
		if analysis.Category != c.want {
			t.Errorf("Analyze(%q).Category = %q; want %q", c.text, analysis.Category, c.want)
		}
	}
}

func TestAnalyzeClearRequest(t *testing.T) {
	a := New(DefaultLexicon())

	clear := a.Analyze("אפשר את הסרט אווטר 2022?", 75)
	if !clear.IsClearRequest {
		t.Error("expected clear request for explicit hebrew ask")
	}
	if clear.Title == "" {
		t.Error("clear request must carry a non-empty title")
	}

	vague := a.Analyze("משעמם לי היום בעבודה", 0)
	if vague.IsClearRequest {
		t.Error("small talk must not be a clear request")
	}
}

func TestAnalyzeMightBeRequest(t *testing.T) {
	a := New(DefaultLexicon())

	// Categorized + modest score.
	categorized := a.Analyze("יש את הסרט אווטר", 20)
	if !categorized.MightBeRequest {
		t.Error("categorized message with score 20 should be a possible request")
	}

	// Uncategorized but high score.
	high := a.Analyze("אפשר את זה בבקשה", 40)
	if !high.MightBeRequest {
		t.Error("score 40 should be a possible request regardless of category")
	}

	// Uncategorized and low score.
	low := a.Analyze("סתם משפט רגיל", 10)
	if low.MightBeRequest {
		t.Error("low uncategorized score must not be a possible request")
	}
}

func TestAnalyzeConfidenceCap(t *testing.T) {
	a := New(DefaultLexicon())
	for _, score := range []int{0, 25, 95, 120} {
		analysis := a.Analyze("אפשר את הסרט אווטר", score)
		want := score
		if want > 95 {
			want = 95
		}
		if analysis.Confidence != want {
			t.Errorf("confidence for score %d = %d; want %d", score, analysis.Confidence, want)
		}
		if analysis.RawScore != score {
			t.Errorf("raw score not preserved: got %d want %d", analysis.RawScore, score)
		}
	}
}

func TestAnalyzeConsistencyWithScore(t *testing.T) {
	a := New(DefaultLexicon())
	texts := []string{
		"אפשר את הסרט אווטר 2022?",
		"יש לכם את המשחק gta 5?",
		"looking for the series prison break",
	}
	for _, text := range texts {
		score := a.Score(text)
		analysis := a.Analyze(text, score)
		want := score
		if want > 95 {
			want = 95
		}
		if analysis.Confidence != want {
			t.Errorf("Analyze(%q).Confidence = %d; want min(95, %d)", text, analysis.Confidence, score)
		}
	}
}

func TestExtractTitleStripsRequestPhrasing(t *testing.T) {
	a := New(DefaultLexicon())

	title := a.ExtractTitle("מחפש את הסרט אווטר 2022")
	if strings.Contains(title, "מחפש") {
		t.Errorf("request phrasing should be stripped from title, got %q", title)
	}
	if !strings.Contains(title, "אווטר") {
		t.Errorf("title should retain the content name, got %q", title)
	}

	long := a.ExtractTitle("אפשר את " + strings.Repeat("מילה ", 20))
	if got := len(strings.Fields(long)); got > 10 {
		t.Errorf("title should cap at 10 words, got %d", got)
	}
}

func TestCustomLexicon(t *testing.T) {
	lex := Lexicon{
		ImmediateFilters:  []string{"nope"},
		RequestIndicators: []string{"gimme"},
		HighPhrases:       []string{"gimme the"},
		ScoreCategories: []CategoryKeywords{
			{types.CategoryGaming, []string{"rocket league"}},
		},
		AnalyzeCategories: []CategoryKeywords{
			{types.CategoryGaming, []string{"rocket league"}},
		},
	}
	a := New(lex)

	if !a.CouldBeRequest("gimme the rocket league") {
		t.Fatal("fixture indicator should be accepted")
	}
	score := a.Score("gimme the rocket league")
	if score != 35+25 {
		t.Fatalf("expected 60 from fixture tables, got %d", score)
	}
	analysis := a.Analyze("gimme the rocket league", score)
	if analysis.Category != types.CategoryGaming {
		t.Fatalf("expected gaming category, got %q", analysis.Category)
	}
}
