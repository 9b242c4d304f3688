package model

import "time"

// ActiveStudent активное зачисление у преподавателя. Ключ — EnrollmentID в
// строковом виде, чтобы различать несколько курсов одного студента.
type ActiveStudent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CourseID     int       `json:"course_id"`
	CourseName   string    `json:"course_name"`
	EnrolledDate time.Time `json:"enrolled_date"`
}

// Earning запись истории выплат преподавателя
type Earning struct {
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	CourseName  string    `json:"course_name"`
	Amount      int       `json:"amount"`
	Date        time.Time `json:"date"`
}

// TeacherStats сводка преподавателя: активные и завершённые зачисления,
// баланс и история выплат. PendingBalance растёт на фиксированную ставку при
// бронировании и уменьшается на неё же при сертификации (не ниже нуля),
// TotalEarned растёт только при сертификации.
type TeacherStats struct {
	ActiveStudents    []ActiveStudent `json:"active_students"`
	CompletedStudents []string        `json:"completed_students"` // EnrollmentID завершённых зачислений
	TotalEarned       int             `json:"total_earned"`
	PendingBalance    int             `json:"pending_balance"`
	SessionsCompleted int             `json:"sessions_completed"`
	Rating            float64         `json:"rating"`
	RatingCount       int             `json:"rating_count"`
	EarningsHistory   []Earning       `json:"earnings_history"`
}

// NewTeacherStats создаёт пустую сводку
func NewTeacherStats() *TeacherStats {
	return &TeacherStats{
		ActiveStudents:    []ActiveStudent{},
		CompletedStudents: []string{},
		EarningsHistory:   []Earning{},
	}
}

// HasActive проверяет есть ли активное зачисление с таким ключом
func (s *TeacherStats) HasActive(enrollmentID string) bool {
	for _, a := range s.ActiveStudents {
		if a.ID == enrollmentID {
			return true
		}
	}
	return false
}
