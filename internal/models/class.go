package models

// Class is an open offering of a course in a weekly slot. AvailableSeats is
// mutated only by the registration coordinator and always equals TotalSeats
// minus the number of enrollments bound to the class.
type Class struct {
	ID             string `db:"id" json:"id"`
	CourseCode     string `db:"course_code" json:"course_code"`
	FacultyID      string `db:"faculty_id" json:"faculty_id"`
	Slot           string `db:"slot" json:"slot"`
	TotalSeats     int    `db:"total_seats" json:"total_seats"`
	AvailableSeats int    `db:"available_seats" json:"available_seats"`
}

// ClassDetail enriches Class with course and faculty info for listings.
type ClassDetail struct {
	Class
	CourseName  string `db:"course_name" json:"course_name"`
	Credits     int    `db:"credits" json:"credits"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}

// ClassSnapshot is the consistent view of the target class the eligibility
// evaluator decides against. It is read under the class row lock.
type ClassSnapshot struct {
	ID             string `db:"id"`
	Slot           string `db:"slot"`
	Credits        int    `db:"credits"`
	AvailableSeats int    `db:"available_seats"`
}

// EnrolledCourse is one row of a student's current load as seen by the
// eligibility evaluator.
type EnrolledCourse struct {
	ClassID string `db:"class_id"`
	Slot    string `db:"slot"`
	Credits int    `db:"credits"`
}
