// Package validate performs intake checks on inbound media before download.
package validate

import "strings"

// MaxFileSizeMB is the largest file the bot will accept.
const MaxFileSizeMB = 624

// MaxFileSizeBytes is MaxFileSizeMB expressed in bytes.
const MaxFileSizeBytes = MaxFileSizeMB * 1024 * 1024

// AllowedFormats lists the accepted file extensions, lowercase.
var AllowedFormats = []string{"mp4", "mp3", "mov"}

// Verdict is the outcome of an intake check.
type Verdict int

const (
	Accept Verdict = iota
	RejectFormat
	RejectSize
)

// Check validates a candidate file's name and declared size against the
// format allow-list and the size ceiling. It must run before any bytes are
// downloaded; declaredSize comes from the transport's file metadata.
func Check(fileName string, declaredSize int64) Verdict {
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = strings.ToLower(fileName[i+1:])
	}
	allowed := false
	for _, f := range AllowedFormats {
		if ext == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return RejectFormat
	}
	if declaredSize > MaxFileSizeBytes {
		return RejectSize
	}
	return Accept
}
