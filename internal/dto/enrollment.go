package dto

// ── enrollment module DTOs ──

// AddStudentsRequest bulk-adds students to an event. The binding layer
// rejects any payload where "students" is not a list of positive
// integers; an empty list binds fine and resolves to no students.
type AddStudentsRequest struct {
	Students []int `json:"students" binding:"required,dive,gte=1"`
}

// MarkAttendanceRequest sets the attended flag for one enrollment.
// The flag is a free two-way toggle.
type MarkAttendanceRequest struct {
	StudentID uint  `json:"student_id" binding:"required"`
	Attended  *bool `json:"attended"   binding:"required"`
}

// StudentSelectResponse is one candidate in the bulk-add pool.
type StudentSelectResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Block string `json:"block,omitempty"`
	Room  string `json:"room"`
}
