package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/hyperjump/kioku/internal/models"
)

// Fingerprint returns a deterministic hash of the entire note collection.
// Notes marshal with fixed field order and nil tag slices are canonicalized
// to empty, so the same collection state always yields the same hash while
// any content, category, or tag change yields a different one.
func Fingerprint(notes []models.Note) string {
	canonical := make([]models.Note, len(notes))
	for i, n := range notes {
		canonical[i] = n
		if canonical[i].Tags == nil {
			canonical[i].Tags = []string{}
		}
	}
	payload, err := json.Marshal(canonical)
	if err != nil {
		// Note fields are plain strings and string slices; this cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
