package types

const (
	ConstraintKindPrereq  = "PREREQ"
	ConstraintKindAntireq = "ANTIREQ"
)

// CourseConstraint is one recorded requirement row. GroupID ties PREREQ rows
// belonging to the same OR-group together and is the empty string for
// ANTIREQ rows, so the uniqueness index never sees a NULL.
type CourseConstraint struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID       string `gorm:"column:course_id;not null;index;uniqueIndex:uq_course_constraint" json:"course_id"`
	Kind           string `gorm:"column:kind;not null;uniqueIndex:uq_course_constraint" json:"kind"`
	TargetCourseID string `gorm:"column:target_course_id;not null;uniqueIndex:uq_course_constraint" json:"target_course_id"`
	GroupID        string `gorm:"column:group_id;not null;default:'';uniqueIndex:uq_course_constraint" json:"group_id"`
}

func (CourseConstraint) TableName() string { return "course_constraint" }
