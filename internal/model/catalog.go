package model

// Course запись каталога, только для чтения
type Course struct {
	ID           int     `json:"id"`
	InstructorID int     `json:"instructor_id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
}

// Instructor автор курсов, только для чтения
type Instructor struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Courses []int  `json:"courses"` // ID курсов этого автора
}
