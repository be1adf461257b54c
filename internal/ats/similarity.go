package ats

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
)

// maxVocabulary caps the term space by corpus frequency.
const maxVocabulary = 500

var errEmptyVocabulary = errors.New("empty vocabulary")

// termPattern picks the vectorizer's terms from cleaned text: runs of two
// or more word characters, so "go", "ui" and "qa" count.
var termPattern = regexp.MustCompile(`\b\w\w+\b`)

// Similarity returns the TF-IDF cosine similarity of the cleaned texts as a
// percentage rounded to two decimals. It tokenizes Cleaned itself rather
// than using the length-filtered Tokens. Any failure yields 0.
func Similarity(a, b Normalized) float64 {
	score, err := tfidfCosine(vectorTerms(a.Cleaned), vectorTerms(b.Cleaned))
	if err != nil {
		return 0
	}
	return clampScore(round2(score * 100))
}

func vectorTerms(cleaned string) []string {
	return termPattern.FindAllString(cleaned, -1)
}

// tfidfCosine fits a TF-IDF model over exactly the given documents and
// returns the cosine of the first two document vectors.
func tfidfCosine(docs ...[]string) (cos float64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cos, err = 0, fmt.Errorf("tfidf: %v", rec)
		}
	}()
	if len(docs) < 2 {
		return 0, errors.New("tfidf: need two documents")
	}

	counts := make([]map[string]int, len(docs))
	corpus := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, tok := range doc {
			if _, stop := englishStopWords[tok]; stop {
				continue
			}
			counts[i][tok]++
			corpus[tok]++
		}
	}
	if len(corpus) == 0 {
		return 0, errEmptyVocabulary
	}

	vocab := topTerms(corpus, maxVocabulary)
	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for _, term := range vocab {
		df := 0
		for _, c := range counts {
			if c[term] > 0 {
				df++
			}
		}
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	var dot, normA, normB float64
	for _, term := range vocab {
		wa := float64(counts[0][term]) * idf[term]
		wb := float64(counts[1][term]) * idf[term]
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	cos = dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(cos) {
		return 0, errors.New("tfidf: nan similarity")
	}
	return cos, nil
}

// topTerms keeps the limit most frequent terms, ties broken alphabetically.
func topTerms(freq map[string]int, limit int) []string {
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
