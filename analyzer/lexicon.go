package analyzer

import "contentbot/types"

// Lexicon carries every phrase and keyword table the analyzer matches
// against. Keeping the tables in one named structure (instead of literals
// scattered through the matching code) lets tests substitute fixture lists
// and makes the weighting auditable.
type Lexicon struct {
	// ImmediateFilters reject a message outright when it equals or starts
	// with one of these: acknowledgements, laughter, small talk.
	ImmediateFilters []string

	// RequestIndicators are words/phrases that signal someone is asking for
	// something.
	RequestIndicators []string

	// ContentIndicators are generic content-kind words (movie, game, ...).
	ContentIndicators []string

	// KnownTitles are curated franchise/title tokens that make a message a
	// plausible request even without an explicit ask.
	KnownTitles []string

	// HighPhrases, MediumPhrases and LowPhrases are the three scoring tiers
	// for explicit-request wording. Only the highest matching tier counts.
	HighPhrases   []string
	MediumPhrases []string
	LowPhrases    []string

	// ScoreCategories are the keyword sets that earn the category bonus,
	// checked in order.
	ScoreCategories []CategoryKeywords

	// AnalyzeCategories are the ordered keyword groups used for category
	// detection in the detailed pass; first match wins.
	AnalyzeCategories []CategoryKeywords

	// TechnicalDetails are trailing tokens (years, quality tags) that make a
	// request more concrete.
	TechnicalDetails []string

	// CasualPenalties are small-talk phrases; each distinct match costs
	// points.
	CasualPenalties []string

	// TitleStopWords are dropped when extracting a provisional title.
	TitleStopWords []string
}

// CategoryKeywords binds a category to its keyword set.
type CategoryKeywords struct {
	Category types.Category
	Keywords []string
}

// DefaultLexicon returns the production word lists. Hebrew and English
// variants sit side by side because group traffic mixes both freely.
func DefaultLexicon() Lexicon {
	return Lexicon{
		ImmediateFilters: []string{
			// thanks
			"תודה", "טנקס", "תנקס", "thanks", "thank you", "תודה רבה",
			// reactions
			"וואו", "ואו", "אמאמא", "יפה", "מגניב", "אחלה", "מעולה",
			// short acknowledgements
			"כן", "לא", "אוק", "אוקיי", "ok", "okay", "בסדר", "טוב",
			// laughter
			"חח", "חחחח", "ההה", "lol", "haha",
			// timing
			"שניה", "רגע", "מיד", "עכשיו אני",
			// personal chat
			"אני בא", "אני הולך", "אתה בא", "מה קורה", "מה נשמע",
		},
		RequestIndicators: []string{
			"אפשר", "יש", "מחפש", "רוצה", "צריך", "תן", "איפה", "מי יש",
			"can i get", "do you have", "looking for", "i want", "i need",
			"where is", "who has", "help me find",
		},
		ContentIndicators: []string{
			"סרט", "סדרה", "משחק", "ספר", "תוכנה", "אפליקצי", "מוזיקה",
			"movie", "series", "game", "book", "software", "app", "music",
			"קורס", "course", "tutorial", "מדריך",
		},
		KnownTitles: []string{
			"שובר שורות", "prison break", "friends", "avatar", "superman",
			"batman", "marvel", "dc", "netflix", "amazon prime", "disney+", "hbo",
		},
		HighPhrases: []string{
			"אפשר את ה", "אפשר את", "יש את ה", "יש את", "מחפש את ה", "מחפש את",
			"רוצה את ה", "רוצה את", "צריך את ה", "צריך את", "תן לי את",
			"can i get the", "do you have the", "looking for the", "i want the",
		},
		MediumPhrases: []string{
			"אפשר", "יש לכם", "מישהו יש", "מי יש לו", "חפש",
			"איפה", "where", "מוצא", "find", "locate",
		},
		LowPhrases: []string{
			"יש", "קיים", "זמין", "available", "have", "exists", "need", "want",
		},
		ScoreCategories: []CategoryKeywords{
			{types.CategorySeries, []string{"הסרט", "הסדרה", "netflix", "disney", "hbo", "סרט", "סדרה", "movie", "series", "show", "film"}},
			{types.CategorySoftware, []string{"תוכנת", "התוכנה", "photoshop", "office", "windows", "תוכנה", "software", "app", "אפליקציה"}},
			{types.CategoryGaming, []string{"המשחק", "steam", "ps4", "ps5", "xbox", "nintendo", "משחק", "game"}},
			{types.CategoryEducation, []string{"הקורס", "tutorial", "course", "udemy", "coursera", "קורס", "מדריך"}},
			{types.CategoryBooks, []string{"הספר", "pdf", "epub", "ebook", "ספר", "book"}},
			{types.CategoryMusic, []string{"השיר", "האלבום", "mp3", "flac", "spotify", "שיר", "אלבום", "מוזיקה", "music"}},
			{types.CategoryGeneral, []string{"friends", "avatar", "superman", "batman", "marvel", "שובר שורות", "prison break", "סופרמן", "בטמן", "איירון מן", "iron man", "avengers", "wonderland"}},
		},
		AnalyzeCategories: []CategoryKeywords{
			{types.CategorySeries, []string{"סרט", "סדרה", "נטפליקס", "דיסני", "movie", "series", "netflix"}},
			{types.CategorySoftware, []string{"תוכנה", "תוכנת", "photoshop", "office", "software"}},
			{types.CategoryGaming, []string{"משחק", "steam", "playstation", "xbox", "game"}},
			{types.CategoryEducation, []string{"קורס", "שיעור", "course", "tutorial", "udemy"}},
			{types.CategoryBooks, []string{"ספר", "pdf", "ebook", "book"}},
			{types.CategoryMusic, []string{"שיר", "אלבום", "מוזיקה", "music", "song"}},
		},
		TechnicalDetails: []string{
			"2024", "2023", "2022", "2021", "2020", "2019", "2018", "2017",
			"2016", "2015", "2014", "2013", "2012", "2011", "2010",
			"4k", "1080p", "hd", "crack", "free",
		},
		CasualPenalties: []string{
			"איך אתה", "מה שלומך", "מה קורה", "איך היה", "מה נשמע",
			"אני חושב", "לדעתי", "מה דעתך", "אני מסכים",
		},
		TitleStopWords: []string{
			"את", "של", "על", "עם", "אני רוצה", "תן לי", "תביא לי",
		},
	}
}
