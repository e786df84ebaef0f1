package factory

import (
	"image/color"
	"math"
	"strconv"

	"go-vfx-engine/internal/component"
	"go-vfx-engine/internal/config"
	"go-vfx-engine/internal/types"
	"go-vfx-engine/internal/utils"
	"go-vfx-engine/pkg/render"
)

// maxBurst bounds a single particle burst before quality scaling.
const maxBurst = 256

// SpawnParticleBurst throws count small spheres upwards and outwards from center.
// Every particle is its own effect; the ids of those that were created are returned.
func (f *Factory) SpawnParticleBurst(center render.Vec3, count int, c any, speed, size, lifetime float64) []types.EffectID {
	col := f.color(c)
	count = f.quality.Count(clampInt(count, 1, maxBurst))
	size = utils.AtLeast(size, config.MinRadius/2)
	speed = math.Max(0, speed)
	base := f.lifetime(lifetime)

	ids := make([]types.EffectID, 0, count)
	for i := 0; i < count; i++ {
		b := f.builder("particle")
		p := b.make(func(h render.Host) (render.Handle, error) { return h.NewSphere(size, 6, col) })
		if b.failed() {
			continue
		}
		p.SetPosition(center)
		x, y, z := f.rng.UnitVector(true)
		v := render.V3(x, y, z).Scale(speed * f.rng.Range(0.5, 1))
		l := base * f.rng.Range(0.7, 1)
		id := f.finish("particle", p, render.GroupTransient, &component.Effect{
			Expiry: f.expiry(l),
			Fade:   f.fade(p, 1, l),
			Motion: &component.Ballistic{Velocity: v, Gravity: config.ParticleGravity},
			Tint:   []color.RGBA{col},
		})
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// SpawnDamagePopup rasterizes amount into a texture and floats it up from
// worldPos. At lower quality tiers a share of popups is dropped to bound texture
// churn; a dropped popup returns 0.
func (f *Factory) SpawnDamagePopup(worldPos render.Vec3, amount float64, c any) types.EffectID {
	if f.rng.Chance(f.quality.PopupSkipChance()) {
		return 0
	}
	col := render.ParseColor(c, config.DamageColor)
	img := f.text.Rasterize(formatAmount(amount), col)
	// one world unit per 32 texels, keeping the aspect in the sprite itself
	size := float64(img.Bounds().Dx()) / 32

	b := f.builder("popup")
	sprite := b.make(func(h render.Host) (render.Handle, error) { return h.NewSprite(img, size) })
	if b.failed() {
		return 0
	}
	sprite.SetPosition(worldPos.Add(render.V3(0, 0.5, 0)))

	l := f.lifetime(config.PopupLife)
	v := render.V3(f.rng.Range(-0.3, 0.3), config.PopupRiseSpeed, f.rng.Range(-0.3, 0.3))
	return f.finish("popup", sprite, render.GroupTransient, &component.Effect{
		Expiry: f.expiry(l),
		Fade:   f.fade(sprite, 1, l),
		Motion: &component.Ballistic{Velocity: v, Gravity: config.PopupGravity},
		Tint:   []color.RGBA{col},
	})
}

func formatAmount(amount float64) string {
	a := math.Abs(amount)
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return "?"
	}
	if a == math.Trunc(a) || a >= 100 {
		return strconv.FormatFloat(math.Round(a), 'f', 0, 64)
	}
	return strconv.FormatFloat(a, 'f', 1, 64)
}
