// Package catalog статический каталог курсов и авторов. Данные неизменяемы,
// ядро читает их как внешнего коллаборатора.
package catalog

import "github.com/peerloop/peerloop/internal/model"

var instructors = []model.Instructor{
	{ID: 1, Name: "Albert Einstein", Bio: "Physics made intuitive", Courses: []int{3, 4}},
	{ID: 2, Name: "Jane Doe", Bio: "Full-stack web development", Courses: []int{1, 5, 6}},
	{ID: 3, Name: "Prof. Maria Rodriguez", Bio: "Data science for practitioners", Courses: []int{7, 8}},
	{ID: 4, Name: "James Wilson", Bio: "Cloud and DevOps engineering", Courses: []int{9, 10, 11}},
	{ID: 8, Name: "Guy Rymberg", Bio: "Product management and AI product strategy", Courses: []int{15, 22, 23, 24, 25}},
}

var courses = []model.Course{
	{ID: 1, InstructorID: 2, Title: "Modern JavaScript from Scratch", Category: "Web Development", Price: 89},
	{ID: 3, InstructorID: 1, Title: "Relativity Without Tears", Category: "Physics", Price: 120},
	{ID: 4, InstructorID: 1, Title: "Quantum Mechanics Primer", Category: "Physics", Price: 140},
	{ID: 5, InstructorID: 2, Title: "React in Practice", Category: "Web Development", Price: 110},
	{ID: 6, InstructorID: 2, Title: "Node.js Backend Bootcamp", Category: "Web Development", Price: 130},
	{ID: 7, InstructorID: 3, Title: "Practical Data Science", Category: "Data Science", Price: 150},
	{ID: 8, InstructorID: 3, Title: "Statistics for Engineers", Category: "Data Science", Price: 95},
	{ID: 9, InstructorID: 4, Title: "AWS from Zero to Production", Category: "Cloud", Price: 160},
	{ID: 10, InstructorID: 4, Title: "Kubernetes Deep Dive", Category: "Cloud", Price: 170},
	{ID: 11, InstructorID: 4, Title: "CI/CD Pipelines that Work", Category: "DevOps", Price: 105},
	{ID: 15, InstructorID: 8, Title: "AI Product Management Fundamentals", Category: "Product", Price: 315},
	{ID: 22, InstructorID: 8, Title: "Backend Systems for PMs", Category: "Product", Price: 315},
	{ID: 23, InstructorID: 8, Title: "Technical Product Strategy", Category: "Product", Price: 315},
	{ID: 24, InstructorID: 8, Title: "Machine Learning for Product Teams", Category: "Product", Price: 315},
	{ID: 25, InstructorID: 8, Title: "Shipping AI Products", Category: "Product", Price: 315},
}

// CourseByID возвращает курс по ID или nil
func CourseByID(id int) *model.Course {
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i]
		}
	}
	return nil
}

// InstructorByID возвращает автора по ID или nil
func InstructorByID(id int) *model.Instructor {
	for i := range instructors {
		if instructors[i].ID == id {
			return &instructors[i]
		}
	}
	return nil
}

// CoursesByInstructor возвращает все курсы автора
func CoursesByInstructor(instructorID int) []model.Course {
	var out []model.Course
	for _, c := range courses {
		if c.InstructorID == instructorID {
			out = append(out, c)
		}
	}
	return out
}

// AllCourses возвращает копию списка курсов
func AllCourses() []model.Course {
	out := make([]model.Course, len(courses))
	copy(out, courses)
	return out
}

// AllInstructors возвращает копию списка авторов
func AllInstructors() []model.Instructor {
	out := make([]model.Instructor, len(instructors))
	copy(out, instructors)
	return out
}
