package service

import (
	"context"
	"testing"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookTestSession(t *testing.T, env *testEnv, studentID, teacherID string, courseID int) *model.Session {
	t.Helper()
	session, err := env.sessions.BookSession(context.Background(), BookingRequest{
		StudentID:   studentID,
		StudentName: "Student " + studentID,
		CourseID:    courseID,
		TeacherID:   teacherID,
		TeacherName: "Teacher " + teacherID,
		Date:        "2026-01-10",
		Time:        "10:00 AM",
	})
	require.NoError(t, err)
	return session
}

func TestBookSessionMirrorsToTeacher(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)

	student := env.sessions.StudentSessions(ctx, "u1")
	require.Len(t, student, 1)
	assert.Equal(t, model.SessionStatusScheduled, student[0].Status)
	assert.Equal(t, "2026-01-10", student[0].Date)

	teacher := env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, teacher, 1)
	assert.Equal(t, session.ID, teacher[0].ID)

	stats := env.sessions.Stats(ctx, "T1")
	assert.Equal(t, 315, stats.PendingBalance)
	require.Len(t, stats.ActiveStudents, 1)
	assert.Equal(t, "u1-15", stats.ActiveStudents[0].ID)
}

func TestBookSessionValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.sessions.BookSession(ctx, BookingRequest{
		StudentID: "u1",
		CourseID:  15,
		TeacherID: "T1",
		Date:      "10.01.2026", // Не ISO-формат
		Time:      "10:00 AM",
	})
	assert.Error(t, err)
	assert.Empty(t, env.sessions.StudentSessions(ctx, "u1"))
}

func TestDuplicateBookingDoesNotDoubleCharge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u1", "T1", 15)

	// Две сессии, но зачисление одно: баланс растёт один раз
	stats := env.sessions.Stats(ctx, "T1")
	assert.Equal(t, 315, stats.PendingBalance)
	assert.Len(t, stats.ActiveStudents, 1)
	assert.Len(t, env.sessions.TeacherSessions(ctx, "T1"), 2)
}

func TestTwoStudentsSameTeacher(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u2", "T1", 15)

	// Второе бронирование не должно затереть первое
	stats := env.sessions.Stats(ctx, "T1")
	assert.Len(t, stats.ActiveStudents, 2)
	assert.Equal(t, 2*315, stats.PendingBalance)
}

func TestPendingBalanceInvariant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u2", "T1", 22)
	bookTestSession(t, env, "u3", "T1", 23)
	bookTestSession(t, env, "u1", "T1", 15) // Дубль зачисления

	stats := env.sessions.Stats(ctx, "T1")
	assert.Equal(t, 315*len(stats.ActiveStudents), stats.PendingBalance)
}

func TestRescheduleSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)

	updated, err := env.sessions.RescheduleSession(ctx, "u1", session.ID, "2026-01-12", "2:00 PM")
	require.NoError(t, err)

	assert.Equal(t, "2026-01-12", updated.Date)
	assert.Equal(t, "2:00 PM", updated.Time)
	require.NotNil(t, updated.RescheduledFrom)
	assert.Equal(t, "2026-01-10", updated.RescheduledFrom.Date)
	assert.Equal(t, "10:00 AM", updated.RescheduledFrom.Time)

	// Чтение обратно возвращает новые значения
	stored := env.sessions.StudentSessions(ctx, "u1")
	require.Len(t, stored, 1)
	assert.Equal(t, "2026-01-12", stored[0].Date)

	// Зеркало преподавателя перенесено тоже
	mirror := env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, mirror, 1)
	assert.Equal(t, "2026-01-12", mirror[0].Date)
	require.NotNil(t, mirror[0].RescheduledFrom)

	// И уведомление поставлено в очередь преподавателя
	notifications := env.sessions.Notifications(ctx, "T1")
	require.Len(t, notifications, 1)
	assert.Equal(t, session.ID, notifications[0].SessionID)
	assert.Equal(t, "2026-01-10", notifications[0].OldDate)
	assert.Equal(t, "2026-01-12", notifications[0].NewDate)
	assert.False(t, notifications[0].Acknowledged)
}

func TestRescheduleUnknownSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.sessions.RescheduleSession(ctx, "u1", "missing", "2026-01-12", "2:00 PM")
	assert.Error(t, err)
}

func TestAcknowledgeNotification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)
	_, err := env.sessions.RescheduleSession(ctx, "u1", session.ID, "2026-01-12", "2:00 PM")
	require.NoError(t, err)

	notifications := env.sessions.Notifications(ctx, "T1")
	require.Len(t, notifications, 1)

	require.NoError(t, env.sessions.AcknowledgeNotification(ctx, "T1", notifications[0].ID))
	assert.True(t, env.sessions.Notifications(ctx, "T1")[0].Acknowledged)

	assert.Error(t, env.sessions.AcknowledgeNotification(ctx, "T1", "missing"))
}

func TestCancelSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)
	require.NoError(t, env.sessions.CancelSession(ctx, "u1", session.ID))

	stored := env.sessions.StudentSessions(ctx, "u1")
	require.Len(t, stored, 1)
	assert.Equal(t, model.SessionStatusCancelled, stored[0].Status)

	// Отмена не трогает баланс и из отменённой сессии нет переходов
	assert.Equal(t, 315, env.sessions.Stats(ctx, "T1").PendingBalance)
	assert.Error(t, env.sessions.CancelSession(ctx, "u1", session.ID))
	_, err := env.sessions.RescheduleSession(ctx, "u1", session.ID, "2026-01-12", "2:00 PM")
	assert.Error(t, err)
}

func TestBookSessionEnforcesCourseLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u1", "T1", 15)

	// Квота зачисления (две сессии) исчерпана
	_, err := env.sessions.BookSession(ctx, BookingRequest{
		StudentID: "u1",
		CourseID:  15,
		TeacherID: "T1",
		Date:      "2026-01-20",
		Time:      "10:00 AM",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session limit")
	assert.Len(t, env.sessions.StudentSessions(ctx, "u1"), 2)

	// Другой курс квотой первого не ограничен
	bookTestSession(t, env, "u1", "T1", 22)
}

func TestCancelledSessionFreesCourseLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	first := bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u1", "T1", 15)

	require.NoError(t, env.sessions.CancelSession(ctx, "u1", first.ID))

	// Отменённая сессия возвращает место в квоте
	bookTestSession(t, env, "u1", "T1", 15)
	assert.Len(t, env.sessions.StudentSessions(ctx, "u1"), 3)
}

func TestCertifyStudent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)

	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u1-15", "Student u1", session.CourseName))

	stats := env.sessions.Stats(ctx, "T1")
	assert.Empty(t, stats.ActiveStudents)
	assert.Contains(t, stats.CompletedStudents, "u1-15")
	assert.Equal(t, 315, stats.TotalEarned)
	assert.Equal(t, 0, stats.PendingBalance)
	require.Len(t, stats.EarningsHistory, 1)
	assert.Equal(t, 315, stats.EarningsHistory[0].Amount)

	// Обе стороны видят сессию завершённой
	teacher := env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, teacher, 1)
	assert.Equal(t, model.SessionStatusCompleted, teacher[0].Status)

	student := env.sessions.StudentSessions(ctx, "u1")
	require.Len(t, student, 1)
	assert.Equal(t, model.SessionStatusCompleted, student[0].Status)
	require.NotNil(t, student[0].CertifiedAt)
}

func TestCertifyDoesNotReviveCancelledSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "u1", "T1", 15)
	require.NoError(t, env.sessions.CancelSession(ctx, "u1", session.ID))

	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u1-15", "Student u1", session.CourseName))

	// Отменённая сессия студента терминальна и сертификацией не оживает
	student := env.sessions.StudentSessions(ctx, "u1")
	require.Len(t, student, 1)
	assert.Equal(t, model.SessionStatusCancelled, student[0].Status)
	assert.Nil(t, student[0].CertifiedAt)

	// Зеркало преподавателя было запланировано (отмена не fan-out), оно завершается
	teacher := env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, teacher, 1)
	assert.Equal(t, model.SessionStatusCompleted, teacher[0].Status)

	// Повторная сертификация терминальное зеркало не трогает, а синтезирует запись
	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u1-15", "Student u1", session.CourseName))
	teacher = env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, teacher, 2)
	assert.Equal(t, model.SessionStatusCompleted, teacher[1].Status)
}

func TestCertifyWithoutSessionsSynthesizesRecord(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u9-22", "Student u9", "Backend Systems for PMs"))

	// История не должна быть пустой: создана минимальная завершённая запись
	teacher := env.sessions.TeacherSessions(ctx, "T1")
	require.Len(t, teacher, 1)
	assert.Equal(t, model.SessionStatusCompleted, teacher[0].Status)
	assert.Equal(t, "u9", teacher[0].StudentID)
	assert.Equal(t, 22, teacher[0].CourseID)

	stats := env.sessions.Stats(ctx, "T1")
	assert.Equal(t, 315, stats.TotalEarned)
	// Баланс не уходит ниже нуля
	assert.Equal(t, 0, stats.PendingBalance)
}

func TestCertifyHyphenatedStudentID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	session := bookTestSession(t, env, "student-teacher-42", "T1", 15)

	enrollmentID := model.NewEnrollmentID("student-teacher-42", 15).String()
	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", enrollmentID, "S", session.CourseName))

	student := env.sessions.StudentSessions(ctx, "student-teacher-42")
	require.Len(t, student, 1)
	assert.Equal(t, model.SessionStatusCompleted, student[0].Status)
}

func TestTotalEarnedIsMonotonic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	bookTestSession(t, env, "u1", "T1", 15)
	bookTestSession(t, env, "u2", "T1", 22)

	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u1-15", "S1", "C1"))
	first := env.sessions.Stats(ctx, "T1").TotalEarned

	require.NoError(t, env.sessions.CertifyStudent(ctx, "T1", "u2-22", "S2", "C2"))
	second := env.sessions.Stats(ctx, "T1").TotalEarned

	assert.Equal(t, 315, first)
	assert.Equal(t, 630, second)
}

func TestCompleteSessionCounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	require.NoError(t, env.sessions.CompleteSession(ctx, "T1"))
	require.NoError(t, env.sessions.CompleteSession(ctx, "T1"))
	assert.Equal(t, 2, env.sessions.Stats(ctx, "T1").SessionsCompleted)
}
