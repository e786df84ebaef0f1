package event

import "go-vfx-engine/internal/types"

// Reclaimed отправляется один раз на эффект после возврата его ресурсов
type Reclaimed struct {
	ID       types.EffectID
	Failures int // resources whose disposal failed and may have leaked
}

// Shed описывает один проход сброса нагрузки
type Shed struct {
	Live      int
	Budget    int
	Shortened int
	FPS       float64
}
