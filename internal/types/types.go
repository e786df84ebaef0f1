// internal/types/types.go
package types

// EffectID identifies a scheduled effect. Zero means "no effect was created".
type EffectID uint64
