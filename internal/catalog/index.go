package catalog

import "strings"

// IndexedCourse курс с предрасчитанной строкой для поиска. Индекс — производный
// одноразовый кэш: его можно в любой момент выбросить и построить заново.
type IndexedCourse struct {
	ID             int    `json:"id"`
	InstructorID   int    `json:"instructor_id"`
	Title          string `json:"title"`
	InstructorName string `json:"instructor_name"`
	SearchText     string `json:"search_text"`
}

// IndexedInstructor автор с предрасчитанной строкой для поиска
type IndexedInstructor struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SearchText string `json:"search_text"`
}

// BuildCourseIndex строит поисковый индекс по курсам
func BuildCourseIndex() []IndexedCourse {
	out := make([]IndexedCourse, 0, len(courses))
	for _, c := range courses {
		instructorName := ""
		if instructor := InstructorByID(c.InstructorID); instructor != nil {
			instructorName = instructor.Name
		}
		out = append(out, IndexedCourse{
			ID:             c.ID,
			InstructorID:   c.InstructorID,
			Title:          c.Title,
			InstructorName: instructorName,
			SearchText:     strings.ToLower(c.Title + " " + c.Category + " " + instructorName),
		})
	}
	return out
}

// BuildInstructorIndex строит поисковый индекс по авторам
func BuildInstructorIndex() []IndexedInstructor {
	out := make([]IndexedInstructor, 0, len(instructors))
	for _, i := range instructors {
		out = append(out, IndexedInstructor{
			ID:         i.ID,
			Name:       i.Name,
			SearchText: strings.ToLower(i.Name + " " + i.Bio),
		})
	}
	return out
}

// SearchCourses ищет по подстроке в индексе курсов
func SearchCourses(index []IndexedCourse, query string) []IndexedCourse {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []IndexedCourse
	for _, c := range index {
		if strings.Contains(c.SearchText, query) {
			out = append(out, c)
		}
	}
	return out
}
