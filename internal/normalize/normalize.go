// Package normalize converts raw article text into the stemmed, stopword-free
// token form the classifier vocabulary was fitted on.
//
// Normalize is pure and idempotent: normalizing the space-joined output of a
// previous call yields the same tokens.
package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	commentRe  = regexp.MustCompile(`<!--[\s\S]*?-->`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	urlRe      = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	emailRe    = regexp.MustCompile(`\S+@\S+`)
	nonAlphaRe = regexp.MustCompile(`[^a-z]+`)
)

// minTokenLen drops single letters left over from contractions and initials.
const minTokenLen = 2

// maxStemPasses bounds the fixed-point stemming loop.
const maxStemPasses = 8

// Normalize lowercases raw, strips markup, URLs, digits and punctuation,
// removes English stopwords and reduces each word to its Porter2 stem.
// Empty or whitespace-only input yields an empty slice.
func Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	// Entities must be decoded before folding, or "&eacute;" ends up outside a-z.
	s := html.UnescapeString(raw)
	s = commentRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = urlRe.ReplaceAllString(s, " ")
	s = emailRe.ReplaceAllString(s, " ")
	s = strings.ToLower(fold(s))
	s = nonAlphaRe.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if IsStopword(w) {
			continue
		}
		st := stem(w)
		if len(st) < minTokenLen || IsStopword(st) {
			continue
		}
		tokens = append(tokens, st)
	}
	return tokens
}

// Join re-serializes tokens the way the transformer expects them.
func Join(tokens []string) string { return strings.Join(tokens, " ") }

// fold strips diacritics so "café" and "cafe" share a token.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func stem(w string) string {
	for i := 0; i < maxStemPasses; i++ {
		next := english.Stem(w, true)
		if next == w {
			break
		}
		w = next
	}
	return w
}
