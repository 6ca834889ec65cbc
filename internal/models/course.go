package models

// Course is a catalog entry. Credits are immutable once a class has been
// opened against the course.
type Course struct {
	Code    string `db:"code" json:"code"`
	Name    string `db:"name" json:"name"`
	Credits int    `db:"credits" json:"credits"`
}
