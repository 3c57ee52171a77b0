package pipeline

import (
	"path/filepath"
	"strings"
	"unicode"
)

// knownExtensions are stripped from annotation names that were derived from uploaded files.
var knownExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".rtf":  true,
	".odt":  true,
}

// normalizeName lower-cases a display or file name and collapses every run of
// non-alphanumeric characters into a single space. Accents are kept as-is.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if ext := filepath.Ext(name); knownExtensions[ext] {
		name = strings.TrimSuffix(name, ext)
	}

	var sb strings.Builder
	pendingSpace := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return sb.String()
}

// namesMatch reports whether a normalized annotation name refers to a normalized
// candidate name: either they are equal or the candidate name appears in the
// annotation as a whole-word run ("cv ana silva 2024" matches "ana silva").
func namesMatch(candidate, annotation string) bool {
	if candidate == "" || annotation == "" {
		return false
	}
	if candidate == annotation {
		return true
	}
	return strings.Contains(" "+annotation+" ", " "+candidate+" ")
}
