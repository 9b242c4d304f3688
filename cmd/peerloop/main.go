package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/peerloop/peerloop/internal/app"
	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/render"
	"github.com/peerloop/peerloop/internal/repository"
	"github.com/peerloop/peerloop/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	kv, closeStore, err := app.OpenStore(ctx, cfg, "migrations", logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	enrollmentRepo := repository.NewEnrollmentRepository(kv, logger)
	followRepo := repository.NewFollowRepository(kv, logger)
	studentRepo := repository.NewStudentSessionRepository(kv, logger)
	teacherRepo := repository.NewTeacherSessionRepository(kv, logger)
	statsRepo := repository.NewStatsRepository(kv, logger)
	notifRepo := repository.NewNotificationRepository(kv, logger)
	indexRepo := repository.NewIndexRepository(kv, logger)

	community := service.NewCommunityService(followRepo, logger)
	enrollments := service.NewEnrollmentService(enrollmentRepo, community, cfg, logger)
	sessions := service.NewSessionService(studentRepo, teacherRepo, statsRepo, notifRepo, cfg, logger)
	reconcile := service.NewReconcileService(studentRepo, teacherRepo, statsRepo, indexRepo, enrollments, community, cfg, logger)

	logger.Sugar().Infow("Starting peerloop demo",
		"environment", cfg.Environment,
		"payout", cfg.PayoutPerEnrollment)

	student := &model.User{ID: "demo_sarah", Name: "Sarah Kim", UserType: model.UserTypeStudent}
	teacher := &model.User{ID: "ProductPioneer42", Name: "Patricia Parker", UserType: model.UserTypeStudentTeacher}

	if _, err := reconcile.OnUserChange(ctx, student); err != nil {
		logger.Fatal("Reconciliation failed", zap.Error(err))
	}

	// Покупка курса и бронирование 1:1 сессии у преподавателя
	if _, err := enrollments.Purchase(ctx, student.ID, 15); err != nil {
		logger.Fatal("Purchase failed", zap.Error(err))
	}

	session, err := sessions.BookSession(ctx, service.BookingRequest{
		StudentID:   student.ID,
		StudentName: student.Name,
		CourseID:    15,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Date:        time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Time:        "10:00 AM",
	})
	if err != nil {
		logger.Fatal("Booking failed", zap.Error(err))
	}

	if _, err := sessions.RescheduleSession(ctx, student.ID, session.ID,
		time.Now().AddDate(0, 0, 5).Format("2006-01-02"), "2:00 PM"); err != nil {
		logger.Fatal("Reschedule failed", zap.Error(err))
	}

	// Преподаватель заходит в дашборд: проход согласования лечит пропуски
	if _, err := reconcile.OnUserChange(ctx, teacher); err != nil {
		logger.Fatal("Reconciliation failed", zap.Error(err))
	}

	enrollmentID := model.NewEnrollmentID(student.ID, 15).String()
	if err := sessions.CertifyStudent(ctx, teacher.ID, enrollmentID, student.Name, session.CourseName); err != nil {
		logger.Fatal("Certification failed", zap.Error(err))
	}

	stats := sessions.Stats(ctx, teacher.ID)
	logger.Sugar().Infow("Teacher stats after certification",
		"teacher_id", teacher.ID,
		"active_students", len(stats.ActiveStudents),
		"completed_students", len(stats.CompletedStudents),
		"total_earned", stats.TotalEarned,
		"pending_balance", stats.PendingBalance)

	imageData, err := render.WeekImage(time.Now(), sessions.StudentSessions(ctx, student.ID))
	if err != nil {
		logger.Fatal("Failed to render week image", zap.Error(err))
	}
	if err := os.WriteFile("week.png", imageData, 0644); err != nil {
		logger.Fatal("Failed to save week image", zap.Error(err))
	}
	logger.Info("Week calendar saved", zap.String("file", "week.png"))
}
