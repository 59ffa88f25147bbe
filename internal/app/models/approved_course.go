package models

// ApprovedCourse is one row of the pre-vetted instructor roster, based on
// the 'approved_courses' table. The roster is read-only to this service; a
// separate intake process maintains it.
type ApprovedCourse struct {
	ID                      int64  `json:"id" db:"id"`
	CourseTitle             string `json:"course_title" db:"course_title"`
	InstructorOfRecordEmail string `json:"instructor_of_record_email" db:"instructor_of_record_email"`
	Semester                string `json:"semester" db:"semester"`
}
