package main

import (
	"fmt"
	"os"
	"time"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/render"
)

func main() {
	// Тестовые данные: неделя с понедельника
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for startDate.Weekday() != time.Monday {
		startDate = startDate.AddDate(0, 0, -1)
	}

	sessions := []model.Session{
		{
			ID:         "session_1",
			CourseID:   15,
			CourseName: "AI Product Management Fundamentals",
			Date:       startDate.Format("2006-01-02"),
			Time:       "10:00 AM",
			Status:     model.SessionStatusScheduled,
		},
		{
			ID:         "session_2",
			CourseID:   23,
			CourseName: "Technical Product Strategy",
			Date:       startDate.Format("2006-01-02"),
			Time:       "2:00 PM",
			Status:     model.SessionStatusCompleted,
		},
		{
			ID:         "session_3",
			CourseID:   22,
			CourseName: "Backend Systems for PMs",
			Date:       startDate.AddDate(0, 0, 1).Format("2006-01-02"),
			Time:       "11:00 AM",
			Status:     model.SessionStatusScheduled,
		},
		{
			ID:         "session_4",
			CourseID:   24,
			CourseName: "Machine Learning for Product Teams",
			Date:       startDate.AddDate(0, 0, 2).Format("2006-01-02"),
			Time:       "4:00 PM",
			Status:     model.SessionStatusCancelled,
		},
		{
			ID:         "session_5",
			CourseID:   25,
			CourseName: "Shipping AI Products",
			Date:       startDate.AddDate(0, 0, 4).Format("2006-01-02"),
			Time:       "1:00 PM",
			Status:     model.SessionStatusScheduled,
		},
	}

	imageData, err := render.WeekImage(startDate, sessions)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Неделя: %s - %s\n", startDate.Format("02.01.2006"), startDate.AddDate(0, 0, 6).Format("02.01.2006"))
	fmt.Printf("📊 Сессий: %d\n", len(sessions))
}
