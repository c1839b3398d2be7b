package component

import "github.com/milk9111/ldtkworld/ldtk"

// Worldly moves an entity from the level it spawned in to the world root one
// pass after it spawns, so it survives that level despawning. Its EntityIid
// also keeps the level from spawning a second copy when it comes back.
type Worldly struct {
	EntityIid string
}

var WorldlyComponent = NewComponent[Worldly]()

// WorldlyFromInstance keys a Worldly on the LDtk entity iid.
func WorldlyFromInstance(inst *ldtk.EntityInstance) Worldly {
	return Worldly{EntityIid: inst.Iid}
}

// WorldlyEntry is one tracked Worldly entity.
type WorldlyEntry struct {
	Entity   uint64 // ecs.Entity
	LevelIid string
	// Pending is set until the entity has been moved under the world.
	Pending bool
}

// WorldlyRegistry is the tracking table kept on a world node. Only the
// worldly system writes it; level composition reads it.
type WorldlyRegistry struct {
	Entries map[string]WorldlyEntry
}

var WorldlyRegistryComponent = NewComponent[WorldlyRegistry]()

func (r *WorldlyRegistry) Lookup(iid string) (WorldlyEntry, bool) {
	if r == nil {
		return WorldlyEntry{}, false
	}
	e, ok := r.Entries[iid]
	return e, ok
}
