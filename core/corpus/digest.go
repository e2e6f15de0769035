package corpus

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest returns the hex BLAKE3-256 hash of the JSON encoding of c. Two
// runs over the same lines yield the same digest.
func (c *Corpus) Digest() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize corpus: %w", err)
	}
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// BookDigest returns the hex BLAKE3-256 hash of one range's verses.
func (r *BookRange) BookDigest() string {
	hasher := blake3.New()
	for _, v := range r.Verses {
		fmt.Fprintf(hasher, "%d:%d %s\n", v.Chapter, v.Verse, v.Text)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
