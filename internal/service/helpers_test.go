package service

import (
	"fmt"
	"time"

	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/repository"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// testEnv собирает все сервисы поверх in-memory хранилища
type testEnv struct {
	kv          *store.Memory
	teacherRepo *repository.TeacherSessionRepository
	indexRepo   *repository.IndexRepository
	community   *CommunityService
	enrollments *EnrollmentService
	sessions    *SessionService
	reconcile   *ReconcileService
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:         "test",
		PayoutPerEnrollment: 315,
		SessionsPerCourse:   2,
		DefaultInstructorID: 8,
		FreshUserIDs:        []string{"demo_new", "demo_sarah", "demo_alex"},
	}
}

func newTestEnv() *testEnv {
	kv := store.NewMemory()
	logger := zap.NewNop()
	cfg := testConfig()

	enrollmentRepo := repository.NewEnrollmentRepository(kv, logger)
	followRepo := repository.NewFollowRepository(kv, logger)
	studentRepo := repository.NewStudentSessionRepository(kv, logger)
	teacherRepo := repository.NewTeacherSessionRepository(kv, logger)
	statsRepo := repository.NewStatsRepository(kv, logger)
	notifRepo := repository.NewNotificationRepository(kv, logger)
	indexRepo := repository.NewIndexRepository(kv, logger)

	community := NewCommunityService(followRepo, logger)
	enrollments := NewEnrollmentService(enrollmentRepo, community, cfg, logger)
	sessions := NewSessionService(studentRepo, teacherRepo, statsRepo, notifRepo, cfg, logger)
	reconcile := NewReconcileService(studentRepo, teacherRepo, statsRepo, indexRepo, enrollments, community, cfg, logger)

	// Детерминированные время и ID
	fixed := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return fixed }
	reconcile.now = func() time.Time { return fixed }

	counter := 0
	sessions.newID = func() string {
		counter++
		return fmt.Sprintf("session_%d", counter)
	}

	return &testEnv{
		kv:          kv,
		teacherRepo: teacherRepo,
		indexRepo:   indexRepo,
		community:   community,
		enrollments: enrollments,
		sessions:    sessions,
		reconcile:   reconcile,
	}
}
