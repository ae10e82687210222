package services

import (
	"testing"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/types"
)

func TestNormalizeRecord(t *testing.T) {
	nr, ok := normalizeRecord(RawCourseRecord{
		SubjectCode:             "cs",
		CatalogNumber:           "246",
		Title:                   "Object-Oriented Software Development",
		RequirementsDescription: "Prereq: CS 136 or CS 138",
	})
	if !ok {
		t.Fatal("record was skipped")
	}
	if nr.Course.ID != "CS-246" || nr.Course.Code != "CS 246" {
		t.Fatalf("id/code = %q/%q", nr.Course.ID, nr.Course.Code)
	}
	if nr.Course.Level == nil || *nr.Course.Level != 200 {
		t.Fatalf("level = %v, want 200", nr.Course.Level)
	}
	if len(nr.Set.PrereqGroups) != 1 || len(nr.Set.PrereqGroups[0]) != 2 {
		t.Fatalf("prereq groups = %v", nr.Set.PrereqGroups)
	}
}

func TestNormalizeRecordSkipsIncomplete(t *testing.T) {
	if _, ok := normalizeRecord(RawCourseRecord{SubjectCode: "CS"}); ok {
		t.Fatal("record without catalog number should be skipped")
	}
	if _, ok := normalizeRecord(RawCourseRecord{CatalogNumber: "135"}); ok {
		t.Fatal("record without subject code should be skipped")
	}
}

func TestLevelFromCatalog(t *testing.T) {
	cases := []struct {
		number string
		want   int // 0 means nil
	}{
		{"135", 100},
		{"246", 200},
		{"486", 400},
		{"51", 500},
		{"", 0},
		{"0xx", 0},
	}
	for _, tc := range cases {
		got := levelFromCatalog(tc.number)
		if tc.want == 0 {
			if got != nil {
				t.Fatalf("levelFromCatalog(%q) = %v, want nil", tc.number, got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("levelFromCatalog(%q) = %v, want %d", tc.number, got, tc.want)
		}
	}
}

func TestConstraintRows(t *testing.T) {
	set := coursegraph.ConstraintSet{
		PrereqGroups: [][]string{{"CS 135"}, {"MATH 135", "MATH 137"}},
		Antireqs:     []string{"CS 145"},
	}
	rows := constraintRows("CS-136", set)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].Kind != types.ConstraintKindPrereq || rows[0].TargetCourseID != "CS-135" || rows[0].GroupID != "CS-136#g1" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].GroupID != "CS-136#g2" || rows[2].GroupID != "CS-136#g2" {
		t.Fatalf("second group ids = %q, %q", rows[1].GroupID, rows[2].GroupID)
	}
	last := rows[3]
	if last.Kind != types.ConstraintKindAntireq || last.TargetCourseID != "CS-145" || last.GroupID != "" {
		t.Fatalf("antireq row = %+v", last)
	}
}

func TestConstraintRowsFiltersSelfReferences(t *testing.T) {
	set := coursegraph.ConstraintSet{
		PrereqGroups: [][]string{{"CS 136", "CS 135"}},
		Antireqs:     []string{"CS 136"},
	}
	rows := constraintRows("CS-136", set)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].TargetCourseID != "CS-135" {
		t.Fatalf("surviving target = %q", rows[0].TargetCourseID)
	}
}
