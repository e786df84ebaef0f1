package system

import (
	"math"

	"go.uber.org/zap"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/logging"
)

// Decision: результат одной подстройки под нагрузку.
type Decision struct {
	FPS       float64
	Measured  bool
	FadeBoost float64
	MaxBudget int
}

// LoadController переводит измеренный FPS в ускорение затухания и бюджет живых
// эффектов, а при превышении бюджета укорачивает часть эффектов.
type LoadController struct {
	log *zap.SugaredLogger

	cursor    int
	shedNow   float64
	shedStart int
	shedValid bool
}

func NewLoadController(log *zap.SugaredLogger) *LoadController {
	return &LoadController{log: logging.OrNop(log)}
}

// Adjust picks the load tier for fps. Without a measurement the relaxed tier
// applies.
func (c *LoadController) Adjust(fps float64, ok bool) Decision {
	d := Decision{
		FPS:       fps,
		Measured:  ok,
		FadeBoost: config.DefaultLoadTier.FadeBoost,
		MaxBudget: config.DefaultLoadTier.MaxBudget,
	}
	if !ok || math.IsNaN(fps) {
		return d
	}
	for _, tier := range config.LoadTiers {
		if fps < tier.BelowFPS {
			d.FadeBoost = tier.FadeBoost
			d.MaxBudget = tier.MaxBudget
			break
		}
	}
	return d
}

// Shed shortens up to min(len-budget, floor(len*ShedFraction)) effects so they
// expire within ShedWindow of now. Effects are picked round-robin from where the
// previous tick stopped; the very first pass therefore starts with the oldest.
// Calling Shed again with the same now repeats the same selection, and since
// expiry is only ever lowered with min() nothing compounds. Projectiles in flight
// are not exempt: their flight is compressed so they still arrive.
func (c *LoadController) Shed(effects []*component.Effect, now float64, budget int) int {
	live := len(effects)
	if live == 0 || live <= budget {
		return 0
	}
	n := live - budget
	if limit := int(math.Floor(float64(live) * config.ShedFraction)); limit < n {
		n = limit
	}
	if n <= 0 {
		return 0
	}

	repeat := c.shedValid && c.shedNow == now
	start := c.cursor % live
	if repeat {
		start = c.shedStart % live
	}

	deadline := now + config.ShedWindow
	for k := 0; k < n; k++ {
		effects[(start+k)%live].ShedTo(deadline)
	}

	if !repeat {
		c.shedNow, c.shedStart, c.shedValid = now, start, true
		c.cursor = (start + n) % live
		c.log.Debugw("load shed", "live", live, "budget", budget, "shortened", n, "next", c.cursor)
	}
	return n
}
