package service

import (
	"context"
	"fmt"

	"github.com/peerloop/peerloop/internal/catalog"
	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository"
	"go.uber.org/zap"
)

// EnrollmentService покупки курсов. Покупка идемпотентна и автоматически
// подключает пользователя к сообществу автора курса.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	community      *CommunityService
	cfg            *config.Config
	logger         *zap.Logger
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	community *CommunityService,
	cfg *config.Config,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		community:      community,
		cfg:            cfg,
		logger:         logger,
	}
}

// Purchase покупает курс. Повторная покупка возвращает текущее состояние без
// изменений. Состояние меняется только здесь, на финальном шаге покупки:
// брошенный до подтверждения флоу не оставляет следов.
func (s *EnrollmentService) Purchase(ctx context.Context, userID string, courseID int) ([]int, error) {
	course := catalog.CourseByID(courseID)
	if course == nil {
		return nil, fmt.Errorf("course %d not found", courseID)
	}

	purchased, _ := s.enrollmentRepo.Get(ctx, userID)
	for _, id := range purchased {
		if id == courseID {
			return purchased, nil
		}
	}

	purchased = append(purchased, courseID)
	if err := s.enrollmentRepo.Set(ctx, userID, purchased); err != nil {
		return nil, fmt.Errorf("purchase course: %w", err)
	}

	// Авто-подписка на сообщество автора вместе с купленным курсом.
	// Неудача подписки не откатывает покупку: sync-проход дочинит.
	if err := s.community.FollowCourse(ctx, userID, courseID); err != nil {
		s.logger.Error("Failed to auto-follow course community",
			zap.String("user_id", userID),
			zap.Int("course_id", courseID),
			zap.Error(err),
		)
	}

	s.logger.Info("Course purchased",
		zap.String("user_id", userID),
		zap.Int("course_id", courseID),
		zap.String("course", course.Title),
	)
	return purchased, nil
}

// IsPurchased проверяет куплен ли курс
func (s *EnrollmentService) IsPurchased(ctx context.Context, userID string, courseID int) bool {
	purchased, _ := s.enrollmentRepo.Get(ctx, userID)
	for _, id := range purchased {
		if id == courseID {
			return true
		}
	}
	return false
}

// Purchased возвращает ID купленных курсов пользователя
func (s *EnrollmentService) Purchased(ctx context.Context, userID string) []int {
	purchased, _ := s.enrollmentRepo.Get(ctx, userID)
	return purchased
}

// PurchasedCourses возвращает купленные курсы с данными каталога.
// Курсы, которых больше нет в каталоге, молча пропускаются.
func (s *EnrollmentService) PurchasedCourses(ctx context.Context, userID string) []model.Course {
	purchased, _ := s.enrollmentRepo.Get(ctx, userID)

	out := make([]model.Course, 0, len(purchased))
	for _, id := range purchased {
		course := catalog.CourseByID(id)
		if course == nil {
			s.logger.Warn("Purchased course missing from catalog",
				zap.String("user_id", userID),
				zap.Int("course_id", id),
			)
			continue
		}
		out = append(out, *course)
	}
	return out
}

// SeedDefaults материализует стартовый набор курсов: "чистые" пользователи
// всегда начинают пустыми, остальные при отсутствии записи получают курсы
// автора по умолчанию
func (s *EnrollmentService) SeedDefaults(ctx context.Context, userID string) ([]int, error) {
	if purchased, ok := s.enrollmentRepo.Get(ctx, userID); ok {
		return purchased, nil
	}
	if s.cfg.IsFreshUser(userID) {
		return []int{}, nil
	}

	defaults := []int{}
	for _, course := range catalog.CoursesByInstructor(s.cfg.DefaultInstructorID) {
		defaults = append(defaults, course.ID)
	}

	if err := s.enrollmentRepo.Set(ctx, userID, defaults); err != nil {
		return nil, fmt.Errorf("seed default enrollments: %w", err)
	}

	s.logger.Info("Seeded default enrollments",
		zap.String("user_id", userID),
		zap.Int("courses", len(defaults)),
	)
	return defaults, nil
}
