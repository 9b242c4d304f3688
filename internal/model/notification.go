package model

import "time"

// RescheduleNotification уведомление преподавателю о переносе сессии.
// Кладётся в очередь при переносе, дашборд преподавателя помечает его
// прочитанным.
type RescheduleNotification struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	StudentName  string    `json:"student_name"`
	CourseName   string    `json:"course_name"`
	OldDate      string    `json:"old_date"`
	OldTime      string    `json:"old_time"`
	NewDate      string    `json:"new_date"`
	NewTime      string    `json:"new_time"`
	CreatedAt    time.Time `json:"created_at"`
	Acknowledged bool      `json:"acknowledged"`
}
