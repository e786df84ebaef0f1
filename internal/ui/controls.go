// internal/ui/controls.go
package ui

import (
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// clickPulse даёт короткое "вспухание" элемента после клика
func clickPulse(lastClick time.Time) float32 {
	elapsed := time.Since(lastClick).Seconds()
	return float32(1.0 + 0.3*math.Exp(-elapsed*8))
}

// colorToRL преобразует стандартный color.Color в rl.Color
func colorToRL(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// PauseButtonRL toggles the engine clock.
type PauseButtonRL struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	IsPaused      bool
	PauseColor    color.Color
	PlayColor     color.Color
}

func NewPauseButtonRL(x, y, size float32, pauseColor, playColor color.Color) *PauseButtonRL {
	return &PauseButtonRL{X: x, Y: y, Size: size, PauseColor: pauseColor, PlayColor: playColor}
}

func (b *PauseButtonRL) Draw() {
	s := b.Size * clickPulse(b.LastClickTime)
	if b.IsPaused {
		// Треугольник (play)
		p1 := rl.NewVector2(b.X-s, b.Y-s*1.2)
		p2 := rl.NewVector2(b.X-s, b.Y+s*1.2)
		p3 := rl.NewVector2(b.X+s, b.Y)
		rl.DrawTriangle(p1, p2, p3, colorToRL(b.PlayColor))
		rl.DrawTriangleLines(p1, p2, p3, rl.White)
		return
	}
	// Две полосы (pause)
	c := colorToRL(b.PauseColor)
	w, h, gap := s*0.6, s*2, s*0.4
	for _, x := range []float32{b.X - w - gap/2, b.X + gap/2} {
		rl.DrawRectangleV(rl.NewVector2(x, b.Y-h/2), rl.NewVector2(w, h), c)
		rl.DrawRectangleLines(int32(x), int32(b.Y-h/2), int32(w), int32(h), rl.White)
	}
}

func (b *PauseButtonRL) IsClicked(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointCircle(mousePos, rl.NewVector2(b.X, b.Y), b.Size*1.5)
}

func (b *PauseButtonRL) SetPaused(paused bool) {
	if b.IsPaused != paused {
		b.LastClickTime = time.Now()
	}
	b.IsPaused = paused
}

// SpeedButtonRL shows the gameplay speed step as one to three chevrons.
type SpeedButtonRL struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []rl.Color
	CurrentState  int
}

func NewSpeedButtonRL(x, y, size float32, stateColors []rl.Color) *SpeedButtonRL {
	return &SpeedButtonRL{X: x, Y: y, Size: size, StateColors: stateColors}
}

func (b *SpeedButtonRL) Draw() {
	s := b.Size * clickPulse(b.LastClickTime)
	c := b.StateColors[b.CurrentState%len(b.StateColors)]
	height, width := s*1.2, s
	offset := width * 0.8
	for i := 0; i <= b.CurrentState%len(b.StateColors); i++ {
		dx := float32(i)*offset - offset
		p1 := rl.NewVector2(b.X-width+dx, b.Y-height/2)
		p2 := rl.NewVector2(b.X+dx, b.Y)
		p3 := rl.NewVector2(b.X-width+dx, b.Y+height/2)
		rl.DrawTriangle(p1, p2, p3, c)
		rl.DrawTriangleLines(p1, p2, p3, rl.White)
	}
}

func (b *SpeedButtonRL) IsClicked(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointCircle(mousePos, rl.NewVector2(b.X, b.Y), b.Size*1.5)
}

// SetState syncs the button with the engine's speed step.
func (b *SpeedButtonRL) SetState(step int) {
	if step != b.CurrentState {
		b.LastClickTime = time.Now()
	}
	b.CurrentState = step
}

// QualityIndicatorRL is a colored dot for the current quality preset.
type QualityIndicatorRL struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
	Colors        []color.RGBA // indexed by quality
}

func NewQualityIndicatorRL(x, y, radius float32) *QualityIndicatorRL {
	return &QualityIndicatorRL{
		X:      x,
		Y:      y,
		Radius: radius,
		Colors: []color.RGBA{
			{220, 80, 60, 255},
			{230, 190, 60, 255},
			{90, 200, 110, 255},
		},
	}
}

func (i *QualityIndicatorRL) Draw(quality int, label string) {
	r := i.Radius * clickPulse(i.LastClickTime)
	c := rl.White
	if quality >= 0 && quality < len(i.Colors) {
		c = colorToRL(i.Colors[quality])
	}
	rl.DrawCircleV(rl.NewVector2(i.X, i.Y), r, c)
	rl.DrawCircleLines(int32(i.X), int32(i.Y), r, rl.White)
	rl.DrawText(label, int32(i.X+i.Radius*2), int32(i.Y-8), 16, rl.White)
}

func (i *QualityIndicatorRL) IsClicked(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointCircle(mousePos, rl.NewVector2(i.X, i.Y), i.Radius)
}

func (i *QualityIndicatorRL) HandleClick() {
	i.LastClickTime = time.Now()
}

// Button is a labelled rectangle that launches one showcase act.
type Button struct {
	Rect       rl.Rectangle
	Text       string
	TextColor  rl.Color
	BgColor    rl.Color
	HoverColor rl.Color
	FontSize   int32
}

func NewButton(rect rl.Rectangle, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  rl.Black,
		BgColor:    rl.LightGray,
		HoverColor: rl.Gray,
		FontSize:   16,
	}
}

func (b *Button) IsClicked(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(mousePos, b.Rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (b *Button) Draw(mousePos rl.Vector2) {
	bg := b.BgColor
	if rl.CheckCollisionPointRec(mousePos, b.Rect) {
		bg = b.HoverColor
	}
	rl.DrawRectangleRec(b.Rect, bg)
	rl.DrawRectangleLinesEx(b.Rect, 2, rl.DarkGray)

	w := rl.MeasureText(b.Text, b.FontSize)
	x := int32(b.Rect.X) + (int32(b.Rect.Width)-w)/2
	y := int32(b.Rect.Y) + (int32(b.Rect.Height)-b.FontSize)/2
	rl.DrawText(b.Text, x, y, b.FontSize, b.TextColor)
}
