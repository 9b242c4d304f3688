package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseByID(t *testing.T) {
	course := CourseByID(15)
	require.NotNil(t, course)
	assert.Equal(t, 8, course.InstructorID)
	assert.Equal(t, 315.0, course.Price)

	assert.Nil(t, CourseByID(9999))
}

func TestCoursesByInstructor(t *testing.T) {
	ids := make([]int, 0)
	for _, c := range CoursesByInstructor(8) {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int{15, 22, 23, 24, 25}, ids)
}

func TestInstructorCourseListsMatchCatalog(t *testing.T) {
	// Списки курсов авторов не должны расходиться с самими курсами
	for _, instructor := range AllInstructors() {
		for _, courseID := range instructor.Courses {
			course := CourseByID(courseID)
			require.NotNil(t, course, "instructor %d lists unknown course %d", instructor.ID, courseID)
			assert.Equal(t, instructor.ID, course.InstructorID)
		}
	}
}

func TestBuildCourseIndex(t *testing.T) {
	index := BuildCourseIndex()
	require.Len(t, index, len(AllCourses()))
	for _, entry := range index {
		assert.NotEmpty(t, entry.SearchText)
		assert.Equal(t, strings.ToLower(entry.SearchText), entry.SearchText)
	}
}

func TestSearchCourses(t *testing.T) {
	byTitle := SearchCourses(BuildCourseIndex(), "Product")
	require.NotEmpty(t, byTitle)

	// Поиск находит курс и по имени автора
	byInstructor := SearchCourses(BuildCourseIndex(), "rymberg")
	require.NotEmpty(t, byInstructor)
	for _, c := range byInstructor {
		assert.Equal(t, 8, c.InstructorID)
	}

	assert.Empty(t, SearchCourses(BuildCourseIndex(), "no such course"))
}
