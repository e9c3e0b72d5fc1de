package search

import "strings"

// stopWords are dropped during keyword extraction alongside tokens of
// length <= 2.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "his": {}, "has": {}, "have": {}, "had": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "they": {}, "been": {},
	"will": {}, "what": {}, "when": {}, "where": {}, "which": {}, "about": {},
	"show": {}, "find": {}, "search": {}, "give": {}, "please": {},
}

// extractKeywords lowercases the query, splits on whitespace, and drops short
// tokens and stop words.
func extractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, token := range fields {
		if len(token) <= 2 {
			continue
		}
		if _, skip := stopWords[token]; skip {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// scoreKeywords computes the fallback relevance for a result that carries no
// explicit score: per keyword, 0.3 for an exact word match in the text, else
// 0.1 for a substring hit, clamped to [0, 1].
func scoreKeywords(text string, keywords []string) float64 {
	words := strings.Fields(strings.ToLower(text))
	score := 0.0
	for _, kw := range keywords {
		matched := 0.0
		for _, word := range words {
			if word == kw {
				matched = 0.3
				break
			}
			if matched == 0 && strings.Contains(word, kw) {
				matched = 0.1
			}
		}
		score += matched
	}
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
