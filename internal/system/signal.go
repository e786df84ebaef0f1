package system

// PerformanceSignal сообщает сглаженный FPS. ok равен false, пока замера нет.
// Реализации не должны блокироваться.
type PerformanceSignal interface {
	FPS() (fps float64, ok bool)
}

// FPSFunc оборачивает функцию вида ebiten.ActualFPS
type FPSFunc func() float64

func (f FPSFunc) FPS() (float64, bool) {
	fps := f()
	return fps, fps > 0
}

// FrameTimeSignal оборачивает среднее время кадра в миллисекундах
type FrameTimeSignal func() float64

func (f FrameTimeSignal) FPS() (float64, bool) {
	ms := f()
	if ms <= 0 {
		return 0, false
	}
	return 1000 / ms, true
}

// FixedFPS: постоянный сигнал, удобен в тестах
type FixedFPS float64

func (f FixedFPS) FPS() (float64, bool) {
	return float64(f), f > 0
}
