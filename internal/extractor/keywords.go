// Package extractor pulls frequency-ranked keywords and adjacent-word key
// phrases out of English text.
package extractor

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"vanmitra-feedback/internal/types"
)

const (
	DefaultTopN = 10
	topPhrases  = 5
	minRunes    = 3
)

// Extract returns the topN most frequent content words of text and its five
// most frequent bigrams. Ties keep first-occurrence order.
func Extract(text string, topN int) types.Keywords {
	if topN <= 0 {
		topN = DefaultTopN
	}
	words := Tokenize(text)

	keywords, counts := rank(words, topN)
	freq := make(map[string]int, len(keywords))
	for _, k := range keywords {
		freq[k] = counts[k]
	}

	pairs := make([]string, 0, len(words))
	for i := 0; i+1 < len(words); i++ {
		pairs = append(pairs, words[i]+" "+words[i+1])
	}
	phrases, _ := rank(pairs, topPhrases)

	return types.Keywords{Keywords: keywords, KeyPhrases: phrases, Frequencies: freq}
}

// Tokenize lowercases text and keeps alphabetic tokens of at least three
// letters that are not English stopwords, in order of appearance. Tokens
// split on whitespace and punctuation, except that hyphens and apostrophes
// inside a word keep it whole; such words ("self-help", "don't") and words
// carrying digits or combining marks are not alphabetic and are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isBoundary)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, isJoiner)
		if utf8.RuneCountInString(f) < minRunes || stopwords[f] || !isAlpha(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isBoundary(r rune) bool {
	if isJoiner(r) {
		return false
	}
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '’'
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func rank(items []string, n int) ([]string, map[string]int) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, it := range items {
		if counts[it] == 0 {
			order = append(order, it)
		}
		counts[it]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order, counts
}

// stopwords is the NLTK English list.
var stopwords = toSet(
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're",
	"you've", "you'll", "you'd", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "she's", "her", "hers", "herself", "it", "it's",
	"its", "itself", "they", "them", "their", "theirs", "themselves", "what",
	"which", "who", "whom", "this", "that", "that'll", "these", "those", "am",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in", "out", "on",
	"off", "over", "under", "again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how", "all", "any", "both", "each", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same",
	"so", "than", "too", "very", "s", "t", "can", "will", "just", "don", "don't",
	"should", "should've", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain",
	"aren", "aren't", "couldn", "couldn't", "didn", "didn't", "doesn", "doesn't",
	"hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn", "isn't", "ma",
	"mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan",
	"shan't", "shouldn", "shouldn't", "wasn", "wasn't", "weren", "weren't",
	"won", "won't", "wouldn", "wouldn't",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
