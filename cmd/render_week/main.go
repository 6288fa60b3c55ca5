package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/render"
)

func main() {
	out := flag.String("out", "week.png", "файл для сохранения картинки")
	window := flag.String("window", availability.EditWindow.String(), "окно сетки, например 07-21")
	flag.Parse()

	w, err := availability.ParseWindow(*window)
	if err != nil {
		fmt.Printf("Неверное окно: %v\n", err)
		os.Exit(1)
	}

	// Тестовая неделя преподавателя
	available := availability.WeekSchedule{
		availability.Monday:    {availability.HourRange(9, 12), availability.HourRange(14, 15)},
		availability.Tuesday:   {availability.HourRange(10, 11), availability.HourRange(16, 18)},
		availability.Wednesday: {availability.HourRange(8, 9)},
		availability.Friday:    {availability.HourRange(11, 14)},
		availability.Sunday:    {availability.HourRange(20, 21)},
	}
	booked := availability.WeekSchedule{
		availability.Monday: {availability.HourRange(10, 11)},
		availability.Friday: {availability.HourRange(13, 14)},
	}

	cls := availability.ClassifyWeek(w, available, booked)

	imageData, err := render.WeekImage("Sample week "+w.String(), cls)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", *out)
	fmt.Printf("📊 Свободно: %d, занято: %d\n",
		cls.Count(availability.CellAvailable), cls.Count(availability.CellBooked))
}
