// Package fingerprint computes structural fingerprints of rendered pages so
// baseline captures can detect DOM drift between runs without pixel diffing.
package fingerprint

import (
	"hash/fnv"
	"math/bits"
	"strings"

	"golang.org/x/net/html"
)

// shingleSize is the n-gram width over the tag sequence. Three tags is wide
// enough to capture nesting changes but tolerant of content-only edits.
const shingleSize = 3

// Page computes a 64-bit SimHash of a page's DOM structure. Only tag names
// in document order contribute; text content and attributes are ignored, so
// two renders of the same layout with different table rows still match.
func Page(htmlStr string) uint64 {
	tags := extractTags(htmlStr)
	if len(tags) == 0 {
		return 0
	}

	shingles := makeShingles(tags, shingleSize)
	if len(shingles) == 0 {
		// Too few tags for shingles; hash the bare tag sequence.
		return hashTokens(tags)
	}
	return hashTokens(shingles)
}

// Distance returns the Hamming distance between two fingerprints. Zero means
// structurally identical; small values mean minor drift.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether two fingerprints are within threshold bits of each
// other.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

// hashTokens computes a SimHash over the tokens: each token's FNV-64a hash
// votes per bit, and the majority per bit forms the fingerprint.
func hashTokens(tokens []string) uint64 {
	var vector [64]int

	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// extractTags walks HTML with the tokenizer and collects open tag names in
// document order.
func extractTags(htmlStr string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlStr))
	var tags []string

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			tags = append(tags, string(tn))
		}
	}
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
