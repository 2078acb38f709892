package domain

const (
	// LanguageWildcard accepts statuses in any language when present in the allow-list
	LanguageWildcard = "all"

	// MaxInternAttempts bounds the lookup/insert loop of the lexicon interner
	MaxInternAttempts = 3
)

// Lexicon identifies one of the deduplicated text dictionaries
type Lexicon string

const (
	LexiconHashtag Lexicon = "hashtag"
	LexiconWord    Lexicon = "word"
)

// IsValidLexicon checks if a lexicon is known
func IsValidLexicon(l Lexicon) bool {
	return l == LexiconHashtag || l == LexiconWord
}
