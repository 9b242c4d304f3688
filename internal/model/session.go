package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled" // Запланирована
	SessionStatusCompleted SessionStatus = "completed" // Завершена (через сертификацию)
	SessionStatusCancelled SessionStatus = "cancelled" // Отменена, запись не удаляется
)

// IsTerminal проверяет является ли статус конечным: из completed и cancelled
// переходов нет
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// RescheduledFrom прежние дата и время сессии после переноса
type RescheduledFrom struct {
	Date string    `json:"date"`
	Time string    `json:"time"`
	At   time.Time `json:"at"`
}

// Session запись 1:1 сессии. Каноническая копия лежит в коллекции студента,
// зеркальная копия с тем же ID — в коллекции преподавателя.
type Session struct {
	ID              string           `json:"id"`
	CourseID        int              `json:"course_id"`
	CourseName      string           `json:"course_name"`
	StudentID       string           `json:"student_id"`
	StudentName     string           `json:"student_name"`
	TeacherID       string           `json:"teacher_id"`
	TeacherName     string           `json:"teacher_name"`
	Date            string           `json:"date"` // ISO-дата YYYY-MM-DD
	Time            string           `json:"time"` // Например "10:00 AM"
	Status          SessionStatus    `json:"status"`
	RescheduledFrom *RescheduledFrom `json:"rescheduled_from,omitempty"`
	CertifiedAt     *time.Time       `json:"certified_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// EnrollmentID ключ зачисления, к которому относится сессия
func (s *Session) EnrollmentID() EnrollmentID {
	return NewEnrollmentID(s.StudentID, s.CourseID)
}
