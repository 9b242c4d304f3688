package service

import (
	"context"
	"fmt"

	"github.com/peerloop/peerloop/internal/catalog"
	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository"
	"go.uber.org/zap"
)

// CommunityService подписки на сообщества авторов и отслеживание отдельных курсов
type CommunityService struct {
	followRepo *repository.FollowRepository
	logger     *zap.Logger
}

func NewCommunityService(followRepo *repository.FollowRepository, logger *zap.Logger) *CommunityService {
	return &CommunityService{
		followRepo: followRepo,
		logger:     logger,
	}
}

// FollowInstructor подписывает пользователя на сообщество автора. Подписка
// создаётся с пустым набором отслеживаемых курсов. Повторная подписка — no-op.
func (s *CommunityService) FollowInstructor(ctx context.Context, userID string, instructorID int) error {
	instructor := catalog.InstructorByID(instructorID)
	if instructor == nil {
		return fmt.Errorf("instructor %d not found", instructorID)
	}

	follows, _ := s.followRepo.Get(ctx, userID)
	for _, f := range follows {
		if f.InstructorID == instructorID {
			return nil
		}
	}

	follows = append(follows, model.CommunityFollow{
		InstructorID:      instructor.ID,
		InstructorName:    instructor.Name,
		CourseIDs:         instructor.Courses,
		FollowedCourseIDs: []int{},
	})

	if err := s.followRepo.Set(ctx, userID, follows); err != nil {
		return fmt.Errorf("follow instructor: %w", err)
	}

	s.logger.Info("Instructor followed",
		zap.String("user_id", userID),
		zap.Int("instructor_id", instructorID),
	)
	return nil
}

// UnfollowInstructor удаляет подписку целиком. Отслеживаемые курсы при этом
// теряются: повторная подписка начинается с пустого набора.
func (s *CommunityService) UnfollowInstructor(ctx context.Context, userID string, instructorID int) error {
	follows, _ := s.followRepo.Get(ctx, userID)

	kept := follows[:0]
	for _, f := range follows {
		if f.InstructorID != instructorID {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(follows) {
		return nil
	}

	if err := s.followRepo.Set(ctx, userID, kept); err != nil {
		return fmt.Errorf("unfollow instructor: %w", err)
	}

	s.logger.Info("Instructor unfollowed",
		zap.String("user_id", userID),
		zap.Int("instructor_id", instructorID),
	)
	return nil
}

// FollowCourse начинает отслеживать курс. Если автор курса ещё не отслеживается,
// подписка на него создаётся автоматически — сразу с этим курсом.
func (s *CommunityService) FollowCourse(ctx context.Context, userID string, courseID int) error {
	course := catalog.CourseByID(courseID)
	if course == nil {
		return fmt.Errorf("course %d not found", courseID)
	}

	follows, _ := s.followRepo.Get(ctx, userID)

	found := false
	for i := range follows {
		if follows[i].InstructorID != course.InstructorID {
			continue
		}
		found = true
		if !follows[i].FollowsCourse(courseID) {
			follows[i].FollowedCourseIDs = append(follows[i].FollowedCourseIDs, courseID)
		}
		break
	}

	if !found {
		instructor := catalog.InstructorByID(course.InstructorID)
		if instructor == nil {
			return fmt.Errorf("instructor %d not found for course %d", course.InstructorID, courseID)
		}
		follows = append(follows, model.CommunityFollow{
			InstructorID:      instructor.ID,
			InstructorName:    instructor.Name,
			CourseIDs:         instructor.Courses,
			FollowedCourseIDs: []int{courseID},
		})
	}

	if err := s.followRepo.Set(ctx, userID, follows); err != nil {
		return fmt.Errorf("follow course: %w", err)
	}

	s.logger.Info("Course followed",
		zap.String("user_id", userID),
		zap.Int("course_id", courseID),
	)
	return nil
}

// UnfollowCourse убирает курс из отслеживаемых, подписка на автора остаётся
func (s *CommunityService) UnfollowCourse(ctx context.Context, userID string, courseID int) error {
	course := catalog.CourseByID(courseID)
	if course == nil {
		return fmt.Errorf("course %d not found", courseID)
	}

	follows, _ := s.followRepo.Get(ctx, userID)

	changed := false
	for i := range follows {
		if follows[i].InstructorID != course.InstructorID {
			continue
		}
		kept := follows[i].FollowedCourseIDs[:0]
		for _, id := range follows[i].FollowedCourseIDs {
			if id != courseID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(follows[i].FollowedCourseIDs) {
			follows[i].FollowedCourseIDs = kept
			changed = true
		}
		break
	}
	if !changed {
		return nil
	}

	if err := s.followRepo.Set(ctx, userID, follows); err != nil {
		return fmt.Errorf("unfollow course: %w", err)
	}
	return nil
}

// IsInstructorFollowed проверяет подписан ли пользователь на автора
func (s *CommunityService) IsInstructorFollowed(ctx context.Context, userID string, instructorID int) bool {
	follows, _ := s.followRepo.Get(ctx, userID)
	for _, f := range follows {
		if f.InstructorID == instructorID {
			return true
		}
	}
	return false
}

// IsCourseFollowed проверяет отслеживается ли курс в какой-либо подписке
func (s *CommunityService) IsCourseFollowed(ctx context.Context, userID string, courseID int) bool {
	follows, _ := s.followRepo.Get(ctx, userID)
	for _, f := range follows {
		if f.FollowsCourse(courseID) {
			return true
		}
	}
	return false
}

// HasAnyCourseFollowed проверяет отслеживается ли хотя бы один курс автора
func (s *CommunityService) HasAnyCourseFollowed(ctx context.Context, userID string, instructorID int) bool {
	follows, _ := s.followRepo.Get(ctx, userID)
	for _, f := range follows {
		if f.InstructorID == instructorID {
			return len(f.FollowedCourseIDs) > 0
		}
	}
	return false
}

// Followed возвращает все подписки пользователя
func (s *CommunityService) Followed(ctx context.Context, userID string) []model.CommunityFollow {
	follows, _ := s.followRepo.Get(ctx, userID)
	return follows
}

// SyncPurchases приводит подписки в соответствие с купленными курсами:
// для каждого купленного курса его ID обязан быть в отслеживаемых курсах
// подписки на автора. Возвращает true если что-то пришлось чинить.
func (s *CommunityService) SyncPurchases(ctx context.Context, userID string, purchased []int) (bool, error) {
	if len(purchased) == 0 {
		return false, nil
	}

	follows, _ := s.followRepo.Get(ctx, userID)

	changed := false
	for i := range follows {
		for _, courseID := range purchased {
			course := catalog.CourseByID(courseID)
			if course == nil || course.InstructorID != follows[i].InstructorID {
				continue
			}
			if !follows[i].FollowsCourse(courseID) {
				follows[i].FollowedCourseIDs = append(follows[i].FollowedCourseIDs, courseID)
				changed = true
			}
		}
	}
	if !changed {
		return false, nil
	}

	if err := s.followRepo.Set(ctx, userID, follows); err != nil {
		return false, fmt.Errorf("sync purchased courses: %w", err)
	}

	s.logger.Info("Synced purchases into followed courses", zap.String("user_id", userID))
	return true, nil
}

// SeedDefaults выдаёт подписки по умолчанию: "чистые" пользователи начинают
// без подписок, остальные при отсутствии записи получают все сообщества
// каталога со всеми курсами
func (s *CommunityService) SeedDefaults(ctx context.Context, userID string, fresh bool) ([]model.CommunityFollow, error) {
	if follows, ok := s.followRepo.Get(ctx, userID); ok && len(follows) > 0 {
		return follows, nil
	}
	if fresh {
		return []model.CommunityFollow{}, nil
	}

	instructors := catalog.AllInstructors()
	follows := make([]model.CommunityFollow, 0, len(instructors))
	for _, instructor := range instructors {
		follows = append(follows, model.CommunityFollow{
			InstructorID:      instructor.ID,
			InstructorName:    instructor.Name,
			CourseIDs:         instructor.Courses,
			FollowedCourseIDs: instructor.Courses,
		})
	}

	if err := s.followRepo.Set(ctx, userID, follows); err != nil {
		return nil, fmt.Errorf("seed default follows: %w", err)
	}
	return follows, nil
}

// Reset удаляет подписки пользователя. Используется для new_user: такие
// пользователи всегда начинают с нуля.
func (s *CommunityService) Reset(ctx context.Context, userID string) error {
	return s.followRepo.Delete(ctx, userID)
}
