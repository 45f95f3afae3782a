// Package deck derives stable identifiers for deck content so sync can tell
// whether a source file actually changed.
package deck

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/recapdev/recap/internal/domain"
)

// Normalize flattens a deck's content into a canonical string. Each field is
// lowercased, trimmed, and newline-normalized so cosmetic edits to a source
// file do not register as content changes.
func Normalize(name string, qs []domain.Question) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	parts := []string{normalizePart(name)}
	for _, q := range qs {
		parts = append(parts, string(q.Type), normalizePart(q.Question), normalizePart(q.Answer), normalizePart(q.ImageURL))
		for _, o := range q.Options {
			parts = append(parts, normalizePart(o))
		}
		for _, b := range q.Blanks {
			parts = append(parts, normalizePart(b))
		}
		for _, p := range q.MatchPairs {
			parts = append(parts, normalizePart(p.Left), normalizePart(p.Right))
		}
		for _, o := range q.OrderItems {
			parts = append(parts, normalizePart(o))
		}
		for _, a := range q.CorrectAnswers {
			parts = append(parts, normalizePart(a))
		}
	}

	// Joining with a newline keeps fields separated so "question"+"answer"
	// cannot collide with "questiona"+"nswer".
	return strings.Join(parts, "\n")
}

// Fingerprint returns the SHA-256 hash of the deck's normalized content as a
// hex string.
func Fingerprint(name string, qs []domain.Question) string {
	normalized := Normalize(name, qs)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(normalized)))
}
