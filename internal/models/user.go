package models

import "time"

// UserRole enumerates the supported account roles.
type UserRole string

// Possible user roles.
const (
	RoleAdmin   UserRole = "admin"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
)

// User is an account in the system. Students, faculty, admins and parents all
// share this table; role decides what they can reach.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	FullName     string    `db:"full_name" json:"full_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ParentLink binds a parent account to a student account.
type ParentLink struct {
	ParentID  string `db:"parent_id" json:"parent_id"`
	StudentID string `db:"student_id" json:"student_id"`
}
