package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/peerloop/peerloop/internal/catalog"
	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository"
	"go.uber.org/zap"
)

// SessionService бронирование и жизненный цикл 1:1 сессий. Каноническая запись
// сессии живёт у студента, зеркальная — у преподавателя; изменения стороны
// преподавателя выполняются fan-out'ом мутаций и при неудаче не откатывают
// студенческую запись (дочинит reconciliation-проход).
type SessionService struct {
	studentRepo *repository.StudentSessionRepository
	teacherRepo *repository.TeacherSessionRepository
	statsRepo   *repository.StatsRepository
	notifRepo   *repository.NotificationRepository
	cfg         *config.Config
	logger      *zap.Logger
	validate    *validator.Validate

	now   func() time.Time
	newID func() string
}

func NewSessionService(
	studentRepo *repository.StudentSessionRepository,
	teacherRepo *repository.TeacherSessionRepository,
	statsRepo *repository.StatsRepository,
	notifRepo *repository.NotificationRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		statsRepo:   statsRepo,
		notifRepo:   notifRepo,
		cfg:         cfg,
		logger:      logger,
		validate:    validator.New(),
		now:         time.Now,
		newID:       func() string { return "session_" + uuid.NewString() },
	}
}

// BookingRequest запрос на бронирование сессии
type BookingRequest struct {
	StudentID   string `validate:"required"`
	StudentName string
	CourseID    int    `validate:"required,gt=0"`
	TeacherID   string `validate:"required"`
	TeacherName string
	Date        string `validate:"required,datetime=2006-01-02"`
	Time        string `validate:"required"`
}

// mutation одна запись fan-out'а в чужое пространство имён. Применяется и
// логируется отдельно от остальных.
type mutation struct {
	collection string
	ownerID    string
	apply      func(ctx context.Context) error
}

// applyMutations применяет мутации по очереди. Неудачи только логируются:
// инициирующая запись уже сохранена и не зависит от их исхода.
func (s *SessionService) applyMutations(ctx context.Context, muts []mutation) {
	for _, m := range muts {
		if err := m.apply(ctx); err != nil {
			s.logger.Error("Cross-owner write failed, reconciliation will heal",
				zap.String("collection", m.collection),
				zap.String("owner_id", m.ownerID),
				zap.Error(err),
			)
		}
	}
}

// BookSession создаёт сессию. Порядок строгий: сначала запись студента, потом
// fan-out на сторону преподавателя (зеркало и сводка). Баланс преподавателя
// растёт на ставку только при первом бронировании этого зачисления.
// Одно зачисление включает фиксированное число сессий; отменённые сессии
// квоту не расходуют.
func (s *SessionService) BookSession(ctx context.Context, req BookingRequest) (*model.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate booking: %w", err)
	}

	sessions, _ := s.studentRepo.Get(ctx, req.StudentID)

	used := 0
	for _, existing := range sessions {
		if existing.CourseID == req.CourseID && existing.Status != model.SessionStatusCancelled {
			used++
		}
	}
	if used >= s.cfg.SessionsPerCourse {
		return nil, fmt.Errorf("course %d: session limit %d reached", req.CourseID, s.cfg.SessionsPerCourse)
	}

	courseName := ""
	if course := catalog.CourseByID(req.CourseID); course != nil {
		courseName = course.Title
	}

	session := model.Session{
		ID:          s.newID(),
		CourseID:    req.CourseID,
		CourseName:  courseName,
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		TeacherID:   req.TeacherID,
		TeacherName: req.TeacherName,
		Date:        req.Date,
		Time:        req.Time,
		Status:      model.SessionStatusScheduled,
		CreatedAt:   s.now(),
	}

	if err := s.studentRepo.Set(ctx, req.StudentID, append(sessions, session)); err != nil {
		return nil, fmt.Errorf("save student session: %w", err)
	}

	s.applyMutations(ctx, []mutation{
		{
			collection: repository.CollectionTeacherSessions,
			ownerID:    req.TeacherID,
			apply: func(ctx context.Context) error {
				return s.mirrorSession(ctx, session)
			},
		},
		{
			collection: repository.CollectionTeacherStats,
			ownerID:    req.TeacherID,
			apply: func(ctx context.Context) error {
				return s.addActiveStudent(ctx, session)
			},
		},
	})

	s.logger.Info("Session booked",
		zap.String("session_id", session.ID),
		zap.String("student_id", req.StudentID),
		zap.String("teacher_id", req.TeacherID),
		zap.Int("course_id", req.CourseID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)
	return &session, nil
}

// mirrorSession добавляет зеркальную запись в коллекцию преподавателя,
// дубли по ID не вставляются
func (s *SessionService) mirrorSession(ctx context.Context, session model.Session) error {
	mirrors, _ := s.teacherRepo.Get(ctx, session.TeacherID)
	for _, m := range mirrors {
		if m.ID == session.ID {
			return nil
		}
	}
	return s.teacherRepo.Set(ctx, session.TeacherID, append(mirrors, session))
}

// addActiveStudent добавляет зачисление в сводку преподавателя и увеличивает
// ожидаемый баланс. Идемпотентно по ключу зачисления.
func (s *SessionService) addActiveStudent(ctx context.Context, session model.Session) error {
	stats := s.statsRepo.Get(ctx, session.TeacherID)

	enrollmentID := session.EnrollmentID().String()
	if stats.HasActive(enrollmentID) {
		return nil
	}

	stats.ActiveStudents = append(stats.ActiveStudents, model.ActiveStudent{
		ID:           enrollmentID,
		Name:         session.StudentName,
		CourseID:     session.CourseID,
		CourseName:   session.CourseName,
		EnrolledDate: s.now(),
	})
	stats.PendingBalance += s.cfg.PayoutPerEnrollment

	return s.statsRepo.Set(ctx, session.TeacherID, stats)
}

// RescheduleSession переносит сессию на новые дату и время. Прежние значения
// сохраняются в RescheduledFrom, преподаватель получает уведомление.
// Запись студента обязана сохраниться; неудача зеркала только логируется.
func (s *SessionService) RescheduleSession(ctx context.Context, studentID, sessionID, newDate, newTime string) (*model.Session, error) {
	if err := s.validate.Var(newDate, "required,datetime=2006-01-02"); err != nil {
		return nil, fmt.Errorf("validate new date: %w", err)
	}
	if newTime == "" {
		return nil, fmt.Errorf("new time is required")
	}

	sessions, _ := s.studentRepo.Get(ctx, studentID)

	var updated *model.Session
	var oldDate, oldTime string
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		if sessions[i].Status.IsTerminal() {
			return nil, fmt.Errorf("session %s is %s", sessionID, sessions[i].Status)
		}
		oldDate, oldTime = sessions[i].Date, sessions[i].Time
		sessions[i].Date = newDate
		sessions[i].Time = newTime
		sessions[i].RescheduledFrom = &model.RescheduledFrom{Date: oldDate, Time: oldTime, At: s.now()}
		updated = &sessions[i]
		break
	}
	if updated == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	if err := s.studentRepo.Set(ctx, studentID, sessions); err != nil {
		return nil, fmt.Errorf("save rescheduled session: %w", err)
	}

	session := *updated
	s.applyMutations(ctx, []mutation{
		{
			collection: repository.CollectionTeacherSessions,
			ownerID:    session.TeacherID,
			apply: func(ctx context.Context) error {
				return s.mirrorReschedule(ctx, session)
			},
		},
		{
			collection: repository.CollectionRescheduleNotifications,
			ownerID:    session.TeacherID,
			apply: func(ctx context.Context) error {
				return s.notifRepo.Append(ctx, session.TeacherID, model.RescheduleNotification{
					ID:          "resched_" + uuid.NewString(),
					SessionID:   session.ID,
					StudentName: session.StudentName,
					CourseName:  session.CourseName,
					OldDate:     oldDate,
					OldTime:     oldTime,
					NewDate:     newDate,
					NewTime:     newTime,
					CreatedAt:   s.now(),
				})
			},
		},
	})

	s.logger.Info("Session rescheduled",
		zap.String("session_id", sessionID),
		zap.String("old_date", oldDate),
		zap.String("new_date", newDate),
	)
	return &session, nil
}

// mirrorReschedule повторяет перенос в зеркальной записи преподавателя.
// Отсутствующее зеркало не ошибка: его создаст reconciliation-проход уже
// с новыми датой и временем.
func (s *SessionService) mirrorReschedule(ctx context.Context, session model.Session) error {
	mirrors, _ := s.teacherRepo.Get(ctx, session.TeacherID)
	for i := range mirrors {
		if mirrors[i].ID == session.ID {
			mirrors[i].Date = session.Date
			mirrors[i].Time = session.Time
			mirrors[i].RescheduledFrom = session.RescheduledFrom
			return s.teacherRepo.Set(ctx, session.TeacherID, mirrors)
		}
	}
	s.logger.Warn("Teacher mirror not found for reschedule",
		zap.String("session_id", session.ID),
		zap.String("teacher_id", session.TeacherID),
	)
	return nil
}

// CancelSession помечает сессию отменённой. Запись не удаляется, балансы не
// меняются: отмена не моделирует возврат денег.
func (s *SessionService) CancelSession(ctx context.Context, studentID, sessionID string) error {
	sessions, _ := s.studentRepo.Get(ctx, studentID)

	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		if sessions[i].Status.IsTerminal() {
			return fmt.Errorf("session %s is %s", sessionID, sessions[i].Status)
		}
		sessions[i].Status = model.SessionStatusCancelled
		if err := s.studentRepo.Set(ctx, studentID, sessions); err != nil {
			return fmt.Errorf("cancel session: %w", err)
		}
		s.logger.Info("Session cancelled", zap.String("session_id", sessionID))
		return nil
	}
	return fmt.Errorf("session %s not found", sessionID)
}

// CertifyStudent сертифицирует зачисление: переносит его из активных в
// завершённые, выплачивает ставку (ожидаемый баланс уменьшается не ниже нуля),
// помечает сессии обеих сторон завершёнными. Если у преподавателя не нашлось
// ни одной сессии зачисления, создаётся минимальная завершённая запись, чтобы
// история не была пустой.
func (s *SessionService) CertifyStudent(ctx context.Context, teacherID, enrollmentID, studentName, courseName string) error {
	if teacherID == "" || enrollmentID == "" {
		return fmt.Errorf("teacher id and enrollment id are required")
	}
	enrollment := model.ParseEnrollmentID(enrollmentID)
	certifiedAt := s.now()

	// Сторона преподавателя — инициирующая запись, её неудача является ошибкой
	stats := s.statsRepo.Get(ctx, teacherID)

	kept := stats.ActiveStudents[:0]
	for _, a := range stats.ActiveStudents {
		if a.ID != enrollmentID {
			kept = append(kept, a)
		}
	}
	stats.ActiveStudents = kept
	stats.CompletedStudents = append(stats.CompletedStudents, enrollmentID)
	stats.PendingBalance -= s.cfg.PayoutPerEnrollment
	if stats.PendingBalance < 0 {
		stats.PendingBalance = 0
	}
	stats.TotalEarned += s.cfg.PayoutPerEnrollment
	stats.EarningsHistory = append([]model.Earning{{
		StudentID:   enrollmentID,
		StudentName: studentName,
		CourseName:  courseName,
		Amount:      s.cfg.PayoutPerEnrollment,
		Date:        certifiedAt,
	}}, stats.EarningsHistory...)

	if err := s.statsRepo.Set(ctx, teacherID, stats); err != nil {
		return fmt.Errorf("save teacher stats: %w", err)
	}

	if err := s.completeTeacherSessions(ctx, teacherID, enrollment, studentName, courseName, certifiedAt); err != nil {
		return fmt.Errorf("complete teacher sessions: %w", err)
	}

	// Сторона студента — fan-out, неудача только логируется
	s.applyMutations(ctx, []mutation{
		{
			collection: repository.CollectionScheduledSessions,
			ownerID:    enrollment.StudentID,
			apply: func(ctx context.Context) error {
				return s.completeStudentSessions(ctx, enrollment, certifiedAt)
			},
		},
	})

	s.logger.Info("Student certified",
		zap.String("teacher_id", teacherID),
		zap.String("enrollment_id", enrollmentID),
		zap.Int("payout", s.cfg.PayoutPerEnrollment),
	)
	return nil
}

// completeTeacherSessions помечает сессии зачисления завершёнными либо
// синтезирует завершённую запись, если сессий не было
func (s *SessionService) completeTeacherSessions(ctx context.Context, teacherID string, enrollment model.EnrollmentID, studentName, courseName string, certifiedAt time.Time) error {
	sessions, _ := s.teacherRepo.Get(ctx, teacherID)

	matched := false
	for i := range sessions {
		if sessions[i].StudentID != enrollment.StudentID {
			continue
		}
		if enrollment.HasCourse() && sessions[i].CourseID != enrollment.CourseID {
			continue
		}
		// Из терминального статуса переходов нет
		if sessions[i].Status.IsTerminal() {
			continue
		}
		sessions[i].Status = model.SessionStatusCompleted
		at := certifiedAt
		sessions[i].CertifiedAt = &at
		matched = true
	}

	if !matched {
		at := certifiedAt
		sessions = append(sessions, model.Session{
			ID:          "cert_" + uuid.NewString(),
			CourseID:    enrollment.CourseID,
			CourseName:  courseName,
			StudentID:   enrollment.StudentID,
			StudentName: studentName,
			TeacherID:   teacherID,
			Date:        certifiedAt.Format("2006-01-02"),
			Time:        certifiedAt.Format("3:04 PM"),
			Status:      model.SessionStatusCompleted,
			CertifiedAt: &at,
			CreatedAt:   certifiedAt,
		})
	}

	return s.teacherRepo.Set(ctx, teacherID, sessions)
}

// completeStudentSessions помечает сессии курса завершёнными в коллекции
// студента (запись в чужое пространство имён)
func (s *SessionService) completeStudentSessions(ctx context.Context, enrollment model.EnrollmentID, certifiedAt time.Time) error {
	if !enrollment.HasCourse() {
		return nil
	}

	sessions, ok := s.studentRepo.Get(ctx, enrollment.StudentID)
	if !ok {
		return nil
	}

	changed := false
	for i := range sessions {
		if sessions[i].CourseID != enrollment.CourseID {
			continue
		}
		// Из терминального статуса переходов нет
		if sessions[i].Status.IsTerminal() {
			continue
		}
		sessions[i].Status = model.SessionStatusCompleted
		at := certifiedAt
		sessions[i].CertifiedAt = &at
		changed = true
	}
	if !changed {
		return nil
	}

	return s.studentRepo.Set(ctx, enrollment.StudentID, sessions)
}

// CompleteSession увеличивает счётчик проведённых сессий преподавателя
func (s *SessionService) CompleteSession(ctx context.Context, teacherID string) error {
	stats := s.statsRepo.Get(ctx, teacherID)
	stats.SessionsCompleted++
	if err := s.statsRepo.Set(ctx, teacherID, stats); err != nil {
		return fmt.Errorf("save teacher stats: %w", err)
	}
	return nil
}

// StudentSessions возвращает сессии студента
func (s *SessionService) StudentSessions(ctx context.Context, studentID string) []model.Session {
	sessions, _ := s.studentRepo.Get(ctx, studentID)
	return sessions
}

// TeacherSessions возвращает зеркальные сессии преподавателя
func (s *SessionService) TeacherSessions(ctx context.Context, teacherID string) []model.Session {
	sessions, _ := s.teacherRepo.Get(ctx, teacherID)
	return sessions
}

// Stats возвращает сводку преподавателя
func (s *SessionService) Stats(ctx context.Context, teacherID string) *model.TeacherStats {
	return s.statsRepo.Get(ctx, teacherID)
}

// Notifications возвращает уведомления преподавателя о переносах
func (s *SessionService) Notifications(ctx context.Context, teacherID string) []model.RescheduleNotification {
	notifications, _ := s.notifRepo.Get(ctx, teacherID)
	return notifications
}

// AcknowledgeNotification помечает уведомление прочитанным
func (s *SessionService) AcknowledgeNotification(ctx context.Context, teacherID, notificationID string) error {
	notifications, _ := s.notifRepo.Get(ctx, teacherID)
	for i := range notifications {
		if notifications[i].ID == notificationID {
			notifications[i].Acknowledged = true
			return s.notifRepo.Set(ctx, teacherID, notifications)
		}
	}
	return fmt.Errorf("notification %s not found", notificationID)
}
