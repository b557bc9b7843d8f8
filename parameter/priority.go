package parameter

// System Execution Priorities (lower runs first)
// Groups recount and assign before emplacements read their targets
// Hulls run after emplacements so shots fired this tick land on the same tick
const (
	PriorityGroup        = 10
	PriorityEmplacement  = 20
	PriorityHull         = 30
	PriorityLock         = 40
	PriorityPlayerWeapon = 50 // After lock, missiles need the fresh lock state
	PriorityGauge        = 60 // After player weapons, consumption flag set this tick
	PriorityDiagnostics  = 1000
)
