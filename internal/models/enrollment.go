package models

import "time"

// Grade is a letter grade derived from marks.
type Grade string

// Possible letter grades.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Enrollment binds a student to a class. The (student_id, class_id) pair is
// unique. Marks and Grade stay NULL until the faculty uploads marks; the
// attendance counters only ever move up.
type Enrollment struct {
	ID                   string     `db:"id" json:"id"`
	StudentID            string     `db:"student_id" json:"student_id"`
	ClassID              string     `db:"class_id" json:"class_id"`
	Marks                *float64   `db:"marks" json:"marks,omitempty"`
	Grade                *Grade     `db:"grade" json:"grade,omitempty"`
	ClassesHeld          int        `db:"classes_held" json:"classes_held"`
	ClassesAttended      int        `db:"classes_attended" json:"classes_attended"`
	AttendancePercentage float64    `db:"attendance_percentage" json:"attendance_percentage"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	GradedAt             *time.Time `db:"graded_at" json:"graded_at,omitempty"`
}

// RosterEntry is one student row in a class roster view.
type RosterEntry struct {
	StudentID            string   `db:"student_id" json:"student_id"`
	FullName             string   `db:"full_name" json:"full_name"`
	Username             string   `db:"username" json:"username"`
	Marks                *float64 `db:"marks" json:"marks,omitempty"`
	Grade                *Grade   `db:"grade" json:"grade,omitempty"`
	AttendancePercentage float64  `db:"attendance_percentage" json:"attendance_percentage"`
}

// AcademicRecord is a student's (or their parent's) view of one enrollment.
type AcademicRecord struct {
	CourseCode           string   `db:"course_code" json:"course_code"`
	CourseName           string   `db:"course_name" json:"course_name"`
	Slot                 string   `db:"slot" json:"slot"`
	Credits              int      `db:"credits" json:"credits"`
	Marks                *float64 `db:"marks" json:"marks,omitempty"`
	Grade                *Grade   `db:"grade" json:"grade,omitempty"`
	ClassesHeld          int      `db:"classes_held" json:"classes_held"`
	ClassesAttended      int      `db:"classes_attended" json:"classes_attended"`
	AttendancePercentage float64  `db:"attendance_percentage" json:"attendance_percentage"`
}
