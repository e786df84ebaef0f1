package event

const (
	EffectSpawned     EventType = "EffectSpawned"     // Data: types.EffectID
	EffectReclaimed   EventType = "EffectReclaimed"   // Data: Reclaimed
	EffectsShed       EventType = "EffectsShed"       // Data: Shed
	ProjectileArrived EventType = "ProjectileArrived" // Data: types.EffectID
	DisposeFailed     EventType = "DisposeFailed"     // Data: error
)
