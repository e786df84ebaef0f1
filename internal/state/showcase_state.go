// internal/state/showcase_state.go
package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-vfx-engine/internal/app"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/system"
	"go-vfx-engine/pkg/render"
	"go-vfx-engine/pkg/render/ebitenhost"
)

var actKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0, ebiten.KeyMinus, ebiten.KeyEqual,
	ebiten.KeyBackspace,
}

// ShowcaseState: основное состояние демо: эффекты и HUD
type ShowcaseState struct {
	sm       *StateMachine
	engine   *app.Engine
	host     *ebitenhost.Host
	director *app.Director
	signal   system.PerformanceSignal
}

func NewShowcaseState(sm *StateMachine, engine *app.Engine, host *ebitenhost.Host) *ShowcaseState {
	return &ShowcaseState{
		sm:       sm,
		engine:   engine,
		host:     host,
		director: app.NewDirector(engine),
		signal:   system.FPSFunc(ebiten.ActualFPS),
	}
}

func (s *ShowcaseState) Enter() {
	s.engine.Log.Infow("showcase started", "acts", len(app.Acts), "quality", s.engine.Factory.Quality())
}

func (s *ShowcaseState) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyF9):
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.director.Auto = !s.director.Auto
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		s.director.Stress = !s.director.Stress
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		s.engine.CycleQuality()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.engine.CycleSpeed()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.engine.AdjustTimeScale(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.engine.AdjustTimeScale(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		if s.director.Target.Alive() {
			s.director.Target.Kill()
		} else {
			s.director.Target.Revive()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.engine.Scheduler.Clear()
	}
	for i, k := range actKeys {
		if i < len(app.Acts) && inpututil.IsKeyJustPressed(k) {
			s.director.Play(i)
		}
	}

	s.director.Update(deltaTime)
	s.engine.Update(deltaTime, s.signal)
}

func (s *ShowcaseState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	s.drawGrid(screen)
	if p, ok := s.director.Target.WorldPosition(); ok {
		x, y := s.project(p)
		vector.StrokeCircle(screen, x, y, 8, 2, config.GridColor, true)
	}
	s.host.Draw(screen)
	ebitenutil.DebugPrint(screen, s.hud())
}

func (s *ShowcaseState) Exit() {}

// drawGrid рисует сетку мира с шагом в две единицы
func (s *ShowcaseState) drawGrid(screen *ebiten.Image) {
	const extent, step = 20.0, 2.0
	for v := -extent; v <= extent; v += step {
		x0, y0 := s.project(render.V3(v, 0, -extent))
		x1, y1 := s.project(render.V3(v, 0, extent))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridColor, false)
		x0, y0 = s.project(render.V3(-extent, 0, v))
		x1, y1 = s.project(render.V3(extent, 0, v))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridColor, false)
	}
}

func (s *ShowcaseState) project(p render.Vec3) (float32, float32) {
	c := s.host.Camera
	return float32(c.CenterX + p.X*c.Scale), float32(c.CenterY + p.Z*c.Scale)
}

func (s *ShowcaseState) hud() string {
	d := s.engine.Scheduler.Decision()
	st := s.engine.Stats
	return fmt.Sprintf(
		"FPS %.0f  live %d/%d  fade x%.2f\n"+
			"quality %s  speed x%.1f  time scale %.2f  auto %v  stress %v\n"+
			"spawned %d  reclaimed %d  shed %d  leaks %d\n"+
			"1-9,0,-,=,BS: acts  SPACE auto  T stress  Q quality  S speed  [ ] time scale  K kill target  C clear  P pause",
		ebiten.ActualFPS(), s.engine.Scheduler.Len(), d.MaxBudget, d.FadeBoost,
		s.engine.Factory.Quality(), s.engine.Speed(), s.engine.Scheduler.TimeScale(), s.director.Auto, s.director.Stress,
		st.Spawned, st.Reclaimed, st.Shortened, st.DisposeFailures,
	)
}
