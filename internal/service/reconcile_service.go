package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/peerloop/peerloop/internal/catalog"
	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository"
	"go.uber.org/zap"
)

// ReconcileService проход согласования коллекций. Запускается при смене
// активного пользователя и по требованию: досеивает стартовые данные, чинит
// пропавшие зеркальные записи (частично неудавшиеся cross-owner записи) и
// сбрасывает производные кэши.
type ReconcileService struct {
	studentRepo *repository.StudentSessionRepository
	teacherRepo *repository.TeacherSessionRepository
	statsRepo   *repository.StatsRepository
	indexRepo   *repository.IndexRepository
	enrollments *EnrollmentService
	community   *CommunityService
	cfg         *config.Config
	logger      *zap.Logger

	now func() time.Time
}

func NewReconcileService(
	studentRepo *repository.StudentSessionRepository,
	teacherRepo *repository.TeacherSessionRepository,
	statsRepo *repository.StatsRepository,
	indexRepo *repository.IndexRepository,
	enrollments *EnrollmentService,
	community *CommunityService,
	cfg *config.Config,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		statsRepo:   statsRepo,
		indexRepo:   indexRepo,
		enrollments: enrollments,
		community:   community,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// HealReport итог прохода согласования
type HealReport struct {
	UserID            string
	SeededEnrollments int
	SeededSessions    int
	HealedMirrors     int
	HealedEnrollments int
	SyncedFollows     bool
}

// demoSessionSeed стартовые demo-сессии для пользователей по умолчанию.
// Курсы совпадают с набором курсов автора по умолчанию.
type demoSessionSeed struct {
	courseID    int
	teacherID   string
	teacherName string
	daysAhead   int
	time        string
}

var demoSessionSeeds = []demoSessionSeed{
	{courseID: 15, teacherID: "ProductPioneer42", teacherName: "Patricia Parker", daysAhead: 2, time: "10:00 AM"},
	{courseID: 23, teacherID: "TechPM_Sarah", teacherName: "Sarah Mitchell", daysAhead: 2, time: "2:00 PM"},
	{courseID: 22, teacherID: "BackendBoss99", teacherName: "Brandon Blake", daysAhead: 5, time: "11:00 AM"},
	{courseID: 24, teacherID: "NeuralNetNinja", teacherName: "Nathan Nguyen", daysAhead: 7, time: "3:00 PM"},
	{courseID: 25, teacherID: "AIArchitect77", teacherName: "Amanda Adams", daysAhead: 9, time: "1:00 PM"},
}

// OnUserChange полный проход при смене активного пользователя: сидирование,
// синхронизация подписок с покупками, лечение зеркал, сброс кэша индекса
func (s *ReconcileService) OnUserChange(ctx context.Context, user *model.User) (*HealReport, error) {
	report := &HealReport{UserID: user.ID}

	// new_user всегда начинает с нуля
	if user.UserType == model.UserTypeNewUser {
		if err := s.community.Reset(ctx, user.ID); err != nil {
			s.logger.Error("Failed to reset follows for new user", zap.Error(err))
		}
	}

	fresh := s.cfg.IsFreshUser(user.ID) || user.UserType == model.UserTypeNewUser

	purchased, err := s.enrollments.SeedDefaults(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("seed enrollments: %w", err)
	}
	report.SeededEnrollments = len(purchased)

	if _, err := s.community.SeedDefaults(ctx, user.ID, fresh); err != nil {
		return nil, fmt.Errorf("seed follows: %w", err)
	}

	seeded, err := s.seedSessions(ctx, user.ID, fresh)
	if err != nil {
		return nil, fmt.Errorf("seed sessions: %w", err)
	}
	report.SeededSessions = seeded

	synced, err := s.community.SyncPurchases(ctx, user.ID, purchased)
	if err != nil {
		return nil, fmt.Errorf("sync follows: %w", err)
	}
	report.SyncedFollows = synced

	heal, err := s.HealMissingMirrors(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	report.HealedMirrors = heal.HealedMirrors
	report.HealedEnrollments = heal.HealedEnrollments

	if err := s.RebuildSearchIndex(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Reconciliation pass finished",
		zap.String("user_id", user.ID),
		zap.Int("healed_mirrors", report.HealedMirrors),
		zap.Int("healed_enrollments", report.HealedEnrollments),
	)
	return report, nil
}

// seedSessions выдаёт demo-сессии, если у пользователя нет ни одной
// запланированной. "Чистые" пользователи сессий не получают.
func (s *ReconcileService) seedSessions(ctx context.Context, userID string, fresh bool) (int, error) {
	sessions, ok := s.studentRepo.Get(ctx, userID)
	if ok && len(sessions) > 0 {
		return 0, nil
	}
	if fresh {
		return 0, nil
	}

	today := s.now()
	seeded := make([]model.Session, 0, len(demoSessionSeeds))
	for _, seed := range demoSessionSeeds {
		courseName := ""
		if course := catalog.CourseByID(seed.courseID); course != nil {
			courseName = course.Title
		}
		seeded = append(seeded, model.Session{
			ID:          "session_" + uuid.NewString(),
			CourseID:    seed.courseID,
			CourseName:  courseName,
			StudentID:   userID,
			TeacherID:   seed.teacherID,
			TeacherName: seed.teacherName,
			Date:        today.AddDate(0, 0, seed.daysAhead).Format("2006-01-02"),
			Time:        seed.time,
			Status:      model.SessionStatusScheduled,
			CreatedAt:   today,
		})
	}

	if err := s.studentRepo.Set(ctx, userID, seeded); err != nil {
		return 0, err
	}
	return len(seeded), nil
}

// HealMissingMirrors сканирует коллекции сессий всех студентов и достраивает
// на стороне преподавателя пропавшие зеркала и зачисления. Дубли по ID сессии
// и ключу зачисления не вставляются, повторный запуск ничего не меняет.
func (s *ReconcileService) HealMissingMirrors(ctx context.Context, teacherID string) (*HealReport, error) {
	report := &HealReport{UserID: teacherID}

	owners, err := s.studentRepo.Owners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list session owners: %w", err)
	}

	mirrors, _ := s.teacherRepo.Get(ctx, teacherID)
	mirrorIDs := make(map[string]bool, len(mirrors))
	for _, m := range mirrors {
		mirrorIDs[m.ID] = true
	}

	stats := s.statsRepo.Get(ctx, teacherID)
	activeIDs := make(map[string]bool, len(stats.ActiveStudents))
	for _, a := range stats.ActiveStudents {
		activeIDs[a.ID] = true
	}
	completedIDs := make(map[string]bool, len(stats.CompletedStudents))
	for _, id := range stats.CompletedStudents {
		completedIDs[id] = true
	}

	statsChanged := false
	for _, owner := range owners {
		if owner == teacherID {
			continue
		}
		// Битые коллекции пропускаются: fail-soft вернёт пустой список
		sessions, _ := s.studentRepo.Get(ctx, owner)
		for _, session := range sessions {
			if session.TeacherID != teacherID {
				continue
			}

			if !mirrorIDs[session.ID] {
				mirrors = append(mirrors, session)
				mirrorIDs[session.ID] = true
				report.HealedMirrors++
			}

			if session.Status != model.SessionStatusScheduled {
				continue
			}
			enrollmentID := session.EnrollmentID().String()
			if activeIDs[enrollmentID] || completedIDs[enrollmentID] {
				continue
			}
			stats.ActiveStudents = append(stats.ActiveStudents, model.ActiveStudent{
				ID:           enrollmentID,
				Name:         session.StudentName,
				CourseID:     session.CourseID,
				CourseName:   session.CourseName,
				EnrolledDate: session.CreatedAt,
			})
			stats.PendingBalance += s.cfg.PayoutPerEnrollment
			activeIDs[enrollmentID] = true
			statsChanged = true
			report.HealedEnrollments++
		}
	}

	if report.HealedMirrors > 0 {
		if err := s.teacherRepo.Set(ctx, teacherID, mirrors); err != nil {
			return nil, fmt.Errorf("save healed mirrors: %w", err)
		}
	}
	if statsChanged {
		if err := s.statsRepo.Set(ctx, teacherID, stats); err != nil {
			return nil, fmt.Errorf("save healed stats: %w", err)
		}
	}

	if report.HealedMirrors > 0 || report.HealedEnrollments > 0 {
		s.logger.Info("Healed missing teacher mirrors",
			zap.String("teacher_id", teacherID),
			zap.Int("mirrors", report.HealedMirrors),
			zap.Int("enrollments", report.HealedEnrollments),
		)
	}
	return report, nil
}

// RebuildSearchIndex безусловно сбрасывает кэш поискового индекса и строит
// его заново: устаревший кэш не должен переживать изменение логики поиска
func (s *ReconcileService) RebuildSearchIndex(ctx context.Context) error {
	if err := s.indexRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear search index: %w", err)
	}
	if err := s.indexRepo.SetCourses(ctx, catalog.BuildCourseIndex()); err != nil {
		return fmt.Errorf("rebuild course index: %w", err)
	}
	if err := s.indexRepo.SetInstructors(ctx, catalog.BuildInstructorIndex()); err != nil {
		return fmt.Errorf("rebuild instructor index: %w", err)
	}
	return nil
}
