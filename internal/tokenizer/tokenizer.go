// Package tokenizer turns tweet text into vocabulary words and normalizes hashtags.
package tokenizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// minWordLength is the shortest word kept in the vocabulary
const minWordLength = 3

var (
	urlPattern     = regexp.MustCompile(`(www\.\S+)|(https?://\S+)`)
	mentionPattern = regexp.MustCompile(`@\S+`)
	hashtagPattern = regexp.MustCompile(`#(\S+)`)
	wordPattern    = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

	caseFolder = cases.Fold()
)

// Words returns the vocabulary words of a tweet in order, duplicates kept.
// URLs and mentions are dropped, hashtags contribute their text.
func Words(text string) []string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "$1")
	text = strings.Trim(text, `'"`)

	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.Trim(field, `'"?,.!;:`)
		if len(word) < minWordLength || !wordPattern.MatchString(word) {
			continue
		}
		words = append(words, word)
	}

	return words
}

// NormalizeHashtag returns the lexicon text of a hashtag: no leading '#',
// NFC composed and case folded. An empty result means the tag carries no text.
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimLeft(tag, "#＃")
	tag = norm.NFC.String(tag)
	return caseFolder.String(tag)
}
