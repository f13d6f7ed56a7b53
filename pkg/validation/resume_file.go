package validation

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of resume file validation
type FileValidationResult struct {
	Valid     bool   // Whether the file passed all validation checks
	Extension string // Detected file extension
	Error     string // Error message if validation failed
}

// Magic byte signatures for allowed resume file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
	".txt":  {},                                                 // no magic bytes
}

// ValidateResumeFile performs 2-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
func ValidateResumeFile(filename string, head []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	signatures, allowed := magicBytes[ext]
	if !allowed {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if len(signatures) > 0 {
		matched := false
		for _, sig := range signatures {
			if len(head) >= len(sig) && bytes.HasPrefix(head, sig) {
				matched = true
				break
			}
		}
		if !matched {
			result.Error = "file content does not match extension (potential file spoofing detected)"
			return result
		}
	}

	result.Valid = true
	return result
}
