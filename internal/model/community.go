package model

// CommunityFollow подписка пользователя на сообщество автора. Внутри подписки
// хранится подмножество отдельно отслеживаемых курсов этого автора.
type CommunityFollow struct {
	InstructorID      int    `json:"instructor_id"`
	InstructorName    string `json:"instructor_name"`
	CourseIDs         []int  `json:"course_ids"`          // Все курсы автора на момент подписки
	FollowedCourseIDs []int  `json:"followed_course_ids"` // Отслеживаемые курсы, подмножество CourseIDs
}

// FollowsCourse проверяет отслеживается ли конкретный курс внутри подписки
func (c *CommunityFollow) FollowsCourse(courseID int) bool {
	for _, id := range c.FollowedCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}
