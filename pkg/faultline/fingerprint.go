// fingerprint.go generates stable hashes for grouping similar notices.

package faultline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint generates a hash for grouping similar notices.
// The fingerprint is based on:
//   - severity and the kind of every carried error
//   - file and function of the first 3 backtrace frames of the first error
//
// It ignores variable data: messages, line numbers, timestamps, notice IDs.
func Fingerprint(notice *Notice) string {
	var parts []string
	parts = append(parts, string(notice.Severity))

	for _, rec := range notice.Errors {
		parts = append(parts, rec.Kind)
	}

	if len(notice.Errors) > 0 {
		frames := notice.Errors[0].Backtrace
		for i, frame := range frames {
			if i >= 3 {
				break
			}
			parts = append(parts, frame.File+"/"+frame.Function)
		}
	}

	input := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(input))

	// Hex-encoded first 16 bytes (32 hex chars)
	return hex.EncodeToString(hash[:16])
}
