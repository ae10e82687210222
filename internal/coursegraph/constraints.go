package coursegraph

import (
	"regexp"
	"sort"
	"strings"
)

// ConstraintSet is the parsed requirement structure for one course:
// PrereqGroups is an AND-of-OR list (every group must be satisfied, any
// member satisfies its group) and Antireqs is a flat conflict set.
type ConstraintSet struct {
	PrereqGroups [][]string `json:"prereq_groups"`
	Antireqs     []string   `json:"antireqs"`

	// Unparsed is true when a prerequisite label was present but no course
	// codes could be extracted from its span ("Permission of instructor").
	// The parser itself still reports empty groups in that case.
	Unparsed bool `json:"-"`
}

var labelRe = regexp.MustCompile(`(?i)\b(prereq|antireq|coreq)\s*:`)

var orSplitRe = regexp.MustCompile(`(?i)\s+or\s+|,|/`)

// ExtractConstraints parses a free-text requirements description. It never
// fails: text with no recognizable structure yields an empty ConstraintSet,
// which is indistinguishable from a course that truly has no prerequisites.
func ExtractConstraints(text string) ConstraintSet {
	pre, preLabeled := labeledSpan(text, "prereq")
	anti, _ := labeledSpan(text, "antireq")

	var set ConstraintSet
	for _, part := range splitAndTopLevel(pre) {
		codes := codesFromOrSegment(part)
		if len(codes) > 0 {
			set.PrereqGroups = append(set.PrereqGroups, codes)
		}
	}
	set.Antireqs = dedupeSorted(ExtractCodes(anti))
	set.Unparsed = preLabeled && strings.TrimSpace(pre) != "" && len(set.PrereqGroups) == 0
	return set
}

// labeledSpan returns the text following the first occurrence of the given
// label, ending at the next Prereq/Antireq/Coreq label or end of string.
func labeledSpan(text, label string) (string, bool) {
	locs := labelRe.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		name := strings.ToLower(text[loc[2]:loc[3]])
		if name != label {
			continue
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return strings.TrimSpace(text[loc[1]:end]), true
	}
	return "", false
}

// splitAndTopLevel splits on the word "and" and on semicolons at paren
// depth zero, keeping parenthesized groups intact. Depth is tracked per
// whitespace token.
func splitAndTopLevel(s string) []string {
	var out []string
	var buf []string
	flush := func() {
		if seg := strings.Join(buf, " "); seg != "" {
			out = append(out, seg)
		}
		buf = buf[:0]
	}
	depth := 0
	for _, tok := range strings.Fields(s) {
		depth += strings.Count(tok, "(")
		switch {
		case depth == 0 && strings.EqualFold(tok, "and"):
			flush()
		case depth == 0 && strings.Contains(tok, ";"):
			parts := strings.Split(tok, ";")
			for i, p := range parts {
				if p != "" {
					buf = append(buf, p)
				}
				if i < len(parts)-1 {
					flush()
				}
			}
		default:
			buf = append(buf, tok)
		}
		depth -= strings.Count(tok, ")")
		if depth < 0 {
			depth = 0
		}
	}
	flush()
	return out
}

// codesFromOrSegment splits one AND-level segment on OR-equivalent
// separators (" or ", comma, slash) and unions the codes found into a
// single sorted OR-group. A segment with no separator but containing codes
// is itself one group.
func codesFromOrSegment(segment string) []string {
	var codes []string
	for _, chunk := range orSplitRe.Split(segment, -1) {
		codes = append(codes, ExtractCodes(chunk)...)
	}
	return dedupeSorted(codes)
}

func dedupeSorted(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
