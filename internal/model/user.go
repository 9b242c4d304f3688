package model

type UserType string

const (
	UserTypeNewUser        UserType = "new_user"        // Только зарегистрировался, всё с нуля
	UserTypeStudent        UserType = "student"         // Обычный студент
	UserTypeStudentTeacher UserType = "student_teacher" // Студент, который преподаёт пройденные курсы
	UserTypeCreator        UserType = "creator"         // Автор курсов
	UserTypeAdmin          UserType = "admin"
)

type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
}

// IsTeacher проверяет может ли пользователь выступать преподавателем 1:1 сессий
func (u *User) IsTeacher() bool {
	return u.UserType == UserTypeStudentTeacher
}
