// Package render рисует недельный календарь 1:1 сессий пользователя в PNG
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"time"

	"github.com/fogleman/gg"
	"github.com/peerloop/peerloop/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	blockRadius     = 6.0
	shadowOffset    = 3.0
	totalDaysInWeek = 7
	hourPaddingTop  = 2
	hourPaddingBot  = 2
	defaultMinHour  = 8
	defaultMaxHour  = 20
	sessionHours    = 1 // Сессия всегда длится один час
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	scheduledColor = color.RGBA{133, 193, 85, 220}
	completedColor = color.RGBA{135, 170, 222, 220}
	cancelledColor = color.RGBA{158, 158, 158, 200}
	blockTextColor = color.RGBA{20, 24, 28, 230}
	shadowColor    = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{90, 95, 100, 220}
)

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage рисует неделю, содержащую date, с сессиями пользователя и
// возвращает PNG
func WeekImage(date time.Time, sessions []model.Session) ([]byte, error) {
	week := normalizeToWeekBounds(date)
	today := normalizeToDay(time.Now())

	byDay := sessionsByDay(sessions)
	hours := calculateHourRange(sessions)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	drawDays(dc, week, today, byDay, hours, dayWidth, dayHeight, cellHeight)
	drawLegend(dc)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sessionsByDay группирует сессии по ISO-дате
func sessionsByDay(sessions []model.Session) map[string][]model.Session {
	byDay := make(map[string][]model.Session)
	for _, s := range sessions {
		byDay[s.Date] = append(byDay[s.Date], s)
	}
	return byDay
}

// sessionHour разбирает время вида "10:00 AM"; второй результат false если
// формат не распознан
func sessionHour(s model.Session) (int, bool) {
	t, err := time.Parse("3:04 PM", s.Time)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(sessions []model.Session) hourRange {
	minHour := 24
	maxHour := 0

	for _, s := range sessions {
		hour, ok := sessionHour(s)
		if !ok {
			continue
		}
		if hour < minHour {
			minHour = hour
		}
		if hour+sessionHours > maxHour {
			maxHour = hour + sessionHours
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

// drawHeader рисует заголовок с месяцем недели
func drawHeader(dc *gg.Context, week weekBounds) {
	var title string
	if week.start.Month() == week.end.Month() {
		title = week.start.Format("January 2006")
	} else {
		title = week.start.Format("January") + " - " + week.end.Format("January 2006")
	}

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/2, 0.5, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for idx := 0; idx < hours.total; idx++ {
		y := float64(headerHeight) + float64(idx)*cellHeight
		label := time.Date(0, 1, 1, hours.start+idx, 0, 0, 0, time.UTC).Format("3 PM")
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDays рисует колонки дней недели с блоками сессий
func drawDays(dc *gg.Context, week weekBounds, today time.Time, byDay map[string][]model.Session,
	hours hourRange, dayWidth, dayHeight int, cellHeight float64) {

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		date := week.start.AddDate(0, 0, dayIndex)
		x := float64(leftLabelsWidth + dayIndex*dayWidth)

		// Фон колонки: чередование, сегодня подсвечен
		switch {
		case date.Equal(today):
			dc.SetColor(todayBgColor)
		case dayIndex%2 == 0:
			dc.SetColor(evenDayColor)
		default:
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		// Линии часов
		dc.SetColor(hourLineColor)
		for idx := 0; idx < hours.total; idx++ {
			y := float64(headerHeight) + float64(idx)*cellHeight
			dc.DrawLine(x, y, x+float64(dayWidth), y)
			dc.Stroke()
		}

		// Подпись дня
		dc.SetColor(textColor)
		dc.DrawStringAnchored(date.Format("Mon 02"), x+float64(dayWidth)/2, float64(headerHeight)-20, 0.5, 0.5)

		for _, session := range byDay[date.Format("2006-01-02")] {
			drawSessionBlock(dc, session, x, hours, dayWidth, cellHeight)
		}
	}
}

// drawSessionBlock рисует один блок сессии в колонке дня
func drawSessionBlock(dc *gg.Context, session model.Session, dayX float64, hours hourRange, dayWidth int, cellHeight float64) {
	hour, ok := sessionHour(session)
	if !ok || hour < hours.start || hour > hours.end {
		return
	}

	x := dayX + dayPaddingX
	y := float64(headerHeight) + float64(hour-hours.start)*cellHeight
	w := float64(dayWidth) - 2*dayPaddingX
	h := cellHeight * sessionHours

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, blockRadius)
	dc.Fill()

	dc.SetColor(statusColor(session.Status))
	dc.DrawRoundedRectangle(x, y, w, h, blockRadius)
	dc.Fill()

	dc.SetColor(blockTextColor)
	dc.DrawStringAnchored(session.Time+"  "+session.CourseName, x+6, y+h/2, 0, 0.5)
}

func statusColor(status model.SessionStatus) color.Color {
	switch status {
	case model.SessionStatusScheduled:
		return scheduledColor
	case model.SessionStatusCompleted:
		return completedColor
	case model.SessionStatusCancelled:
		return cancelledColor
	}
	return cancelledColor
}

// drawLegend рисует легенду статусов справа
func drawLegend(dc *gg.Context) {
	entries := []struct {
		label string
		color color.Color
	}{
		{"scheduled", scheduledColor},
		{"completed", completedColor},
		{"cancelled", cancelledColor},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 10)
	for _, entry := range entries {
		dc.SetColor(entry.color)
		dc.DrawRoundedRectangle(x, y, 16, 16, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(entry.label, x+24, y+8, 0, 0.5)
		y += 28
	}
}
