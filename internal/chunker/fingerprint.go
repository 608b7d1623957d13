package chunker

import (
	"crypto/sha256"
	"fmt"
)

// Fingerprint computes the deterministic content fingerprint used for
// ingestion deduplication: a hash over the origin locator, the content
// length and a hash of the first 500 characters. A document whose
// fingerprint already exists in storage is skipped on re-ingestion.
func Fingerprint(sourceURL, content string) string {
	head := content
	if len(head) > 500 {
		head = head[:500]
	}
	headHash := sha256.Sum256([]byte(head))
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%x", sourceURL, len(content), headHash))
	return fmt.Sprintf("%x", sum)
}
