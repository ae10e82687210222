package coursegraph

import (
	"reflect"
	"testing"
)

func TestExtractCodes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"CS 135", []string{"CS 135"}},
		{"MATH239 and CS 246", []string{"MATH 239", "CS 246"}},
		{"One of MTE 121/GENE 121", []string{"MTE 121", "GENE 121"}},
		{"CS 146A or CS 145", []string{"CS 146A", "CS 145"}},
		{"permission of the instructor", nil},
		{"", nil},
		{"CS 135 then CS 135 again", []string{"CS 135", "CS 135"}},
	}
	for _, tc := range cases {
		got := ExtractCodes(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ExtractCodes(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := map[string]string{
		"cs-135":     "CS 135",
		"CS  135":    "CS 135",
		"math239":    "MATH 239",
		"CS 146A":    "CS 146A",
		" stat-206 ": "STAT 206",
	}
	for in, want := range cases {
		if got := NormalizeCode(in); got != want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCodeIDRoundTrip(t *testing.T) {
	for _, code := range []string{"CS 135", "MATH 239", "CS 146A", "PD 10"} {
		id := CodeToID(code)
		if back := IDToCode(id); back != code {
			t.Errorf("IDToCode(CodeToID(%q)) = %q", code, back)
		}
	}
	for _, id := range []string{"CS-135", "MATH-239", "CS-146A"} {
		code := IDToCode(id)
		if back := CodeToID(code); back != id {
			t.Errorf("CodeToID(IDToCode(%q)) = %q", id, back)
		}
	}
}
