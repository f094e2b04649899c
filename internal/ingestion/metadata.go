package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a job description came from.
type Metadata struct {
	Source    string `json:"source"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
}

// NewMetadata records a job description's content hash and load time.
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
