// Package render рисует недельную сетку доступности в PNG.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1000
	headerHeight     = 70
	footerHeight     = 50
	leftLabelsWidth  = 90
	gridHeight       = 600
	minRowHeight     = 18
	cellPadding      = 3.0
	cellBorderRadius = 4.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 255}
	gridLineColor  = color.NRGBA{200, 200, 200, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}

	availableColor = color.RGBA{133, 193, 85, 230}
	bookedColor    = color.RGBA{255, 182, 193, 255}
	emptyColor     = color.RGBA{0, 0, 0, 0}
	bookedText     = color.RGBA{120, 40, 50, 255}
)

// StatusColor цвет ячейки по статусу
func StatusColor(status availability.CellStatus) color.RGBA {
	switch status {
	case availability.CellAvailable:
		return availableColor
	case availability.CellBooked:
		return bookedColor
	default:
		return emptyColor
	}
}

// WeekImage рисует классификацию недели. Высота картинки зависит от числа ячеек окна.
func WeekImage(title string, cls availability.Classification) ([]byte, error) {
	if len(cls.Cells) == 0 {
		return nil, fmt.Errorf("render week: %w", availability.ErrInvalidWindow)
	}

	rowHeight := gridHeight / len(cls.Cells)
	if rowHeight < minRowHeight {
		rowHeight = minRowHeight
	}
	height := headerHeight + rowHeight*len(cls.Cells) + footerHeight
	dayWidth := (imageWidth - leftLabelsWidth) / len(availability.Weekdays)

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	drawHeader(dc, title, dayWidth)
	drawHourLabels(dc, cls.Cells, rowHeight)

	for i, day := range availability.Weekdays {
		x := float64(leftLabelsWidth + i*dayWidth)
		drawDayColumn(dc, x, i, dayWidth, rowHeight, len(cls.Cells))
		drawCells(dc, x, dayWidth, rowHeight, cls.Status[day])
	}

	drawLegend(dc, height)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeader заголовок и короткие названия дней
func drawHeader(dc *gg.Context, title string, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, 18, 0.5, 0.5)

	for i, day := range availability.Weekdays {
		x := float64(leftLabelsWidth+i*dayWidth) + float64(dayWidth)/2
		dc.DrawStringAnchored(day.Short(), x, float64(headerHeight)-14, 0.5, 0.5)
	}
}

// drawHourLabels подписи ячеек слева
func drawHourLabels(dc *gg.Context, cells []availability.TimeRange, rowHeight int) {
	dc.SetColor(hourLabelColor)
	for i, cell := range cells {
		y := float64(headerHeight+i*rowHeight) + float64(rowHeight)/2
		dc.DrawStringAnchored(cell.String()[:5], float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayColumn фон дня и линии часов
func drawDayColumn(dc *gg.Context, x float64, index, dayWidth, rowHeight, rows int) {
	if index%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, headerHeight, float64(dayWidth), float64(rows*rowHeight))
	dc.Fill()

	dc.SetLineWidth(0.5)
	dc.SetColor(gridLineColor)
	for r := 0; r <= rows; r++ {
		y := float64(headerHeight + r*rowHeight)
		dc.DrawLine(x, y, x+float64(dayWidth), y)
		dc.Stroke()
	}
}

// drawCells закрашивает ячейки дня; пустые остаются фоном
func drawCells(dc *gg.Context, x float64, dayWidth, rowHeight int, statuses []availability.CellStatus) {
	for r, status := range statuses {
		if status == availability.CellEmpty {
			continue
		}
		y := float64(headerHeight + r*rowHeight)
		w := float64(dayWidth) - 2*cellPadding
		h := float64(rowHeight) - 2*cellPadding

		dc.SetColor(StatusColor(status))
		dc.DrawRoundedRectangle(x+cellPadding, y+cellPadding, w, h, cellBorderRadius)
		dc.Fill()

		if status == availability.CellBooked {
			dc.SetColor(bookedText)
			dc.DrawStringAnchored("booked", x+float64(dayWidth)/2, y+float64(rowHeight)/2, 0.5, 0.5)
		}
	}
}

// drawLegend легенда статусов внизу
func drawLegend(dc *gg.Context, height int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Available", availableColor},
		{"Booked", bookedColor},
		{"Empty", evenDayColor},
	}

	boxW, boxH := 20.0, 14.0
	x := float64(leftLabelsWidth)
	y := float64(height-footerHeight) + 18

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2, 0, 0.5)
		x += 140
	}
}
