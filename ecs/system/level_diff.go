package system

import (
	"slices"

	"github.com/milk9111/ldtkworld/ecs/component"
)

// LevelDiff is what one reconciliation pass has to do. Spawn, Despawn and
// Unchanged are disjoint. Respawn lists realized levels carrying a Respawn
// marker; they are torn down, and the desired ones among them also appear in
// Spawn.
type LevelDiff struct {
	Spawn     []string
	Despawn   []string
	Unchanged []string
	Respawn   []string
}

// Empty reports whether the pass has nothing to do.
func (d LevelDiff) Empty() bool {
	return len(d.Spawn) == 0 && len(d.Despawn) == 0 && len(d.Respawn) == 0
}

// DiffLevels compares the desired set with what is spawned. Levels in
// respawning count as not spawned. All slices come back sorted so the result
// does not depend on map or insertion order.
func DiffLevels(desired component.LevelSet, realized, respawning []string) LevelDiff {
	marked := make(map[string]struct{}, len(respawning))
	for _, iid := range respawning {
		marked[iid] = struct{}{}
	}

	var d LevelDiff
	live := make(map[string]struct{}, len(realized))
	for _, iid := range realized {
		if _, ok := live[iid]; ok {
			continue
		}
		if _, ok := marked[iid]; ok {
			d.Respawn = append(d.Respawn, iid)
			continue
		}
		live[iid] = struct{}{}
		if desired.Contains(iid) {
			d.Unchanged = append(d.Unchanged, iid)
		} else {
			d.Despawn = append(d.Despawn, iid)
		}
	}
	for iid := range desired.Iids {
		if _, ok := live[iid]; !ok {
			d.Spawn = append(d.Spawn, iid)
		}
	}

	slices.Sort(d.Spawn)
	slices.Sort(d.Despawn)
	slices.Sort(d.Unchanged)
	slices.Sort(d.Respawn)
	d.Respawn = slices.Compact(d.Respawn)
	return d
}
