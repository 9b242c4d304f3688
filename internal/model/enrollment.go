package model

import (
	"strconv"
	"strings"
)

// EnrollmentID составной ключ "студент + курс". В хранилище сериализуется
// строкой вида "<studentID>-<courseID>", поэтому декодирование обязано резать
// по ПОСЛЕДНЕМУ дефису: сами ID студентов могут содержать дефисы.
type EnrollmentID struct {
	StudentID string
	CourseID  int
}

func NewEnrollmentID(studentID string, courseID int) EnrollmentID {
	return EnrollmentID{StudentID: studentID, CourseID: courseID}
}

// String сериализует ключ в строковый формат хранилища
func (e EnrollmentID) String() string {
	return e.StudentID + "-" + strconv.Itoa(e.CourseID)
}

// HasCourse проверяет удалось ли при декодировании выделить ID курса
func (e EnrollmentID) HasCourse() bool {
	return e.CourseID != 0
}

// ParseEnrollmentID декодирует строковый ключ. Если дефиса нет или суффикс не
// числовой, вся строка считается ID студента, а курс остаётся неизвестным —
// это единственное место, где формат ключа разбирается.
func ParseEnrollmentID(s string) EnrollmentID {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 {
		return EnrollmentID{StudentID: s}
	}
	courseID, err := strconv.Atoi(s[idx+1:])
	if err != nil || courseID <= 0 {
		return EnrollmentID{StudentID: s}
	}
	return EnrollmentID{StudentID: s[:idx], CourseID: courseID}
}
