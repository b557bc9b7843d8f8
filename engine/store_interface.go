package engine

import (
	"github.com/lixenwraith/skybastion/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World destroys entities across every store without knowing concrete types
type AnyStore interface {
	RemoveComponent(e core.Entity)
	HasComponent(e core.Entity) bool
	CountEntity() int
	ClearAllComponent()
}
