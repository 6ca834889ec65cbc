package models

// SlotSession is one weekly meeting of a slot code.
type SlotSession struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// TimetableEntry is one rendered session of a student's weekly timetable.
type TimetableEntry struct {
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
	FacultyName string `json:"faculty"`
	Slot        string `json:"slot"`
	Day         string `json:"day"`
	Time        string `json:"time"`
}

// TimetableRow is the raw per-enrollment row the timetable is composed from.
type TimetableRow struct {
	CourseCode  string `db:"course_code"`
	CourseName  string `db:"course_name"`
	FacultyName string `db:"faculty_name"`
	Slot        string `db:"slot"`
}
