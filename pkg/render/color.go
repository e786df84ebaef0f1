package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor normalizes a caller-supplied color. It accepts color.Color values,
// integers and integral floats in 0xRRGGBB form, and the strings "0xRRGGBB",
// "#RRGGBB" and "RRGGBB". Anything else yields fallback.
func ParseColor(v any, fallback color.RGBA) color.RGBA {
	switch c := v.(type) {
	case nil:
		return fallback
	case color.RGBA:
		return c
	case color.Color:
		return color.RGBAModel.Convert(c).(color.RGBA)
	case int:
		return fromHex(int64(c), fallback)
	case int32:
		return fromHex(int64(c), fallback)
	case int64:
		return fromHex(c, fallback)
	case uint:
		return fromHex(int64(c), fallback)
	case uint32:
		return fromHex(int64(c), fallback)
	case uint64:
		if c > 0xFFFFFF {
			return fallback
		}
		return fromHex(int64(c), fallback)
	case float64:
		if c != math.Trunc(c) {
			return fallback
		}
		return fromHex(int64(c), fallback)
	case string:
		return parseHexString(c, fallback)
	}
	return fallback
}

func parseHexString(s string, fallback color.RGBA) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 6 {
		return fallback
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return fromHex(int64(n), fallback)
}

func fromHex(n int64, fallback color.RGBA) color.RGBA {
	if n < 0 || n > 0xFFFFFF {
		return fallback
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor moves a color halfway towards white. Used for hot cores of beams.
func LightenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: c.R + (255-c.R)/2,
		G: c.G + (255-c.G)/2,
		B: c.B + (255-c.B)/2,
		A: c.A,
	}
}

// WithOpacity returns c with alpha set from an opacity in [0,1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return c
}
