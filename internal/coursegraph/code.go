package coursegraph

import (
	"regexp"
	"strings"
)

// Matches "CS 135", "MATH239", "CS 146A" inside arbitrary text.
var codeRe = regexp.MustCompile(`\b([A-Z]{2,4})\s*(\d{2,3}[A-Z]?)\b`)

// ExtractCodes returns every course-code-shaped substring in text, in order,
// normalized to the canonical "SUBJ NNN" form. Duplicates are preserved;
// callers that want set semantics dedupe themselves.
func ExtractCodes(text string) []string {
	if text == "" {
		return nil
	}
	matches := codeRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1]+" "+m[2])
	}
	return out
}

// NormalizeCode collapses whitespace and hyphens in a raw code ("cs-135",
// "CS  135", "math239") and upper-cases it into canonical "SUBJ NNN" form.
// Input that does not contain a code shape is returned collapsed and
// upper-cased as-is.
func NormalizeCode(raw string) string {
	collapsed := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToUpper(raw), "-", " ")), " ")
	if m := codeRe.FindStringSubmatch(collapsed); m != nil {
		return m[1] + " " + m[2]
	}
	return collapsed
}

// CodeToID converts a course code to its graph node id: "CS 135" -> "CS-135".
func CodeToID(code string) string {
	return strings.ReplaceAll(NormalizeCode(code), " ", "-")
}

// IDToCode is the inverse of CodeToID: "CS-135" -> "CS 135".
func IDToCode(id string) string {
	return NormalizeCode(strings.ReplaceAll(id, "-", " "))
}
