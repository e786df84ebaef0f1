// cmd/vfx-demo/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-vfx-engine/internal/app"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/logging"
	"go-vfx-engine/internal/state"
	"go-vfx-engine/pkg/render/ebitenhost"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	confPath := flag.String("config", "", "path to a YAML config file")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	skipMenu := flag.Bool("skip-menu", false, "start straight in the showcase")
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

	if *pprofAddr != "" {
		go func() {
			logger.Warnw("pprof stopped", "err", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	host := ebitenhost.New(ebitenhost.Camera{
		CenterX: config.ScreenWidth / 2,
		CenterY: config.ScreenHeight / 2,
		Scale:   config.WorldScale,
	})
	engine, err := app.NewEngine(host, cfg, logger)
	if err != nil {
		logger.Fatalw("engine init failed", "err", err)
	}
	defer engine.Shutdown()

	sm := state.NewStateMachine()
	showcase := func() state.State { return state.NewShowcaseState(sm, engine, host) }
	if *skipMenu {
		sm.SetState(showcase())
	} else {
		sm.SetState(state.NewMenuState(sm, showcase))
	}
	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("VFX Engine Demo")
	if err := ebiten.RunGame(a); err != nil {
		logger.Errorw("game loop stopped", "err", err)
	}
}
