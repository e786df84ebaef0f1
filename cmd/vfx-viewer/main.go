// cmd/vfx-viewer/main.go
package main

import (
	"flag"
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-vfx-engine/internal/app"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/internal/system"
	"go-vfx-engine/internal/ui"
	"go-vfx-engine/pkg/render/raylibhost"
)

// Vector3Lerp выполняет линейную интерполяцию между двумя векторами
func Vector3Lerp(v1, v2 rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Add(v1, rl.Vector3Scale(rl.Vector3Subtract(v2, v1), t))
}

func main() {
	confPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *confPath != "" {
		var err error
		if cfg, err = config.Load(*confPath); err != nil {
			log.Fatal(err)
		}
	}
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// --- Инициализация ---
	const screenWidth = 1280
	const screenHeight = 720
	backgroundColor := rl.NewColor(config.BackgroundColor.R, config.BackgroundColor.G, config.BackgroundColor.B, 255)

	rl.InitWindow(screenWidth, screenHeight, "VFX Viewer | Q/E - Rotate, Mouse Wheel - Change Angle")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	host := raylibhost.New()
	engine, err := app.NewEngine(host, cfg, logger)
	if err != nil {
		logger.Fatalw("engine init failed", "err", err)
	}
	// effects own GPU resources, they have to go before the window
	defer engine.Shutdown()
	director := app.NewDirector(engine)
	signal := system.FPSFunc(func() float64 { return float64(rl.GetFPS()) })

	// --- Настройка 3D камеры ---
	camera := rl.Camera3D{}
	camera.Up = rl.NewVector3(0, 1, 0)
	camera.Projection = rl.CameraPerspective

	isoPos := rl.NewVector3(16, 18, 22)
	topDownPos := rl.NewVector3(0, 40, 0.1)
	target := rl.NewVector3(0, 0, 0)
	isoFovy := float32(55.0)
	topDownFovy := float32(45.0)
	cameraAngleT := float32(0.2)

	// --- UI ---
	pauseButton := ui.NewPauseButtonRL(screenWidth-40, 40, 12, rl.SkyBlue, rl.Lime)
	speedButton := ui.NewSpeedButtonRL(screenWidth-100, 40, 12, []rl.Color{rl.SkyBlue, rl.Orange, rl.Purple})
	qualityIndicator := ui.NewQualityIndicatorRL(screenWidth-220, 40, 10)
	buttons := make([]*ui.Button, len(app.Acts))
	for i, act := range app.Acts {
		rect := rl.NewRectangle(10, float32(110+i*30), 110, 26)
		buttons[i] = ui.NewButton(rect, act.Name)
	}

	// --- Главный цикл ---
	for !rl.WindowShouldClose() {
		deltaTime := float64(rl.GetFrameTime())
		if deltaTime > config.MaxDeltaTime {
			deltaTime = config.MaxDeltaTime
		}

		// Вращение
		if rl.IsKeyDown(rl.KeyQ) {
			isoPos = rl.Vector3RotateByAxisAngle(isoPos, camera.Up, -0.02)
		}
		if rl.IsKeyDown(rl.KeyE) {
			isoPos = rl.Vector3RotateByAxisAngle(isoPos, camera.Up, 0.02)
		}
		// Изменение угла
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cameraAngleT += wheel * 0.05
			if cameraAngleT > 0.99 {
				cameraAngleT = 0.99
			} else if cameraAngleT < 0.0 {
				cameraAngleT = 0.0
			}
		}
		camera.Position = Vector3Lerp(isoPos, topDownPos, cameraAngleT)
		camera.Target = target
		camera.Fovy = isoFovy + (topDownFovy-isoFovy)*cameraAngleT

		// Управление
		mouse := rl.GetMousePosition()
		if rl.IsKeyPressed(rl.KeyP) || (rl.IsMouseButtonPressed(rl.MouseLeftButton) && pauseButton.IsClicked(mouse)) {
			engine.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyS) || (rl.IsMouseButtonPressed(rl.MouseLeftButton) && speedButton.IsClicked(mouse)) {
			engine.CycleSpeed()
		}
		if rl.IsKeyPressed(rl.KeyG) || (rl.IsMouseButtonPressed(rl.MouseLeftButton) && qualityIndicator.IsClicked(mouse)) {
			engine.CycleQuality()
			qualityIndicator.HandleClick()
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			director.Auto = !director.Auto
		}
		if rl.IsKeyPressed(rl.KeyT) {
			director.Stress = !director.Stress
		}
		if rl.IsKeyPressed(rl.KeyLeftBracket) {
			engine.AdjustTimeScale(0.5)
		}
		if rl.IsKeyPressed(rl.KeyRightBracket) {
			engine.AdjustTimeScale(2)
		}
		if rl.IsKeyPressed(rl.KeyK) {
			if director.Target.Alive() {
				director.Target.Kill()
			} else {
				director.Target.Revive()
			}
		}
		for i, b := range buttons {
			if b.IsClicked(mouse) {
				director.Play(i)
			}
		}
		pauseButton.SetPaused(engine.IsPaused())
		speedButton.SetState(engine.SpeedStep())

		director.Update(deltaTime)
		engine.Update(deltaTime, signal)

		// --- Отрисовка ---
		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)

		rl.BeginMode3D(camera)
		rl.DrawGrid(20, 2)
		if p, ok := director.Target.WorldPosition(); ok {
			rl.DrawCubeWires(rl.NewVector3(float32(p.X), 0.5, float32(p.Z)), 0.6, 1, 0.6, rl.LightGray)
		}
		host.Draw(camera)
		rl.EndMode3D()

		// --- UI ---
		for _, b := range buttons {
			b.Draw(mouse)
		}
		pauseButton.Draw()
		speedButton.Draw()
		qualityIndicator.Draw(int(engine.Factory.Quality()), engine.Factory.Quality().String())

		d := engine.Scheduler.Decision()
		st := engine.Stats
		rl.DrawText(fmt.Sprintf("live %d/%d  fade x%.2f  time scale %.2f  auto %v  stress %v",
			engine.Scheduler.Len(), d.MaxBudget, d.FadeBoost, engine.Scheduler.TimeScale(), director.Auto, director.Stress), 10, 10, 20, rl.White)
		rl.DrawText(fmt.Sprintf("spawned %d  reclaimed %d  shed %d  leaks %d",
			st.Spawned, st.Reclaimed, st.Shortened, st.DisposeFailures), 10, 36, 20, rl.White)
		rl.DrawText("SPACE auto  T stress  G quality  S speed  [ ] time scale  K kill target  P pause", 10, 62, 16, rl.Gray)
		rl.DrawFPS(screenWidth-100, screenHeight-30)

		rl.EndDrawing()
	}
}

