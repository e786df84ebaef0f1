// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-vfx-engine/internal/config"
)

// MenuState: титульный экран перед витриной эффектов
type MenuState struct {
	sm   *StateMachine
	next func() State
}

func NewMenuState(sm *StateMachine, next func() State) *MenuState {
	return &MenuState{sm: sm, next: next}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(m.next())
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	ebitenutil.DebugPrintAt(screen, "VFX ENGINE DEMO\n\npress SPACE to start", config.ScreenWidth/2-60, config.ScreenHeight/2-24)
}

func (m *MenuState) Exit() {}
