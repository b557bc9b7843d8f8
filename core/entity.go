package core

// Entity is a generational handle into the world arena
// Low 32 bits hold the slot index, high 32 bits the slot generation
// Zero is the null handle; slot 0 is never allocated
type Entity uint64

// MakeEntity packs a slot index and generation into a handle
func MakeEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the arena slot of the handle
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation returns the slot generation the handle was issued for
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsNull reports whether the handle is the zero handle
func (e Entity) IsNull() bool {
	return e == 0
}
