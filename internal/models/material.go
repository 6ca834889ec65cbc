package models

import "time"

// CourseMaterial is a file a faculty member shared for a course.
type CourseMaterial struct {
	ID         string    `db:"id" json:"id"`
	CourseCode string    `db:"course_code" json:"course_code"`
	FacultyID  string    `db:"faculty_id" json:"faculty_id"`
	Title      string    `db:"title" json:"title"`
	FilePath   string    `db:"file_path" json:"file_path"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}
