package system

import (
	"log"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/entity"
)

// Event types pushed on the world event queue.
const (
	EventLevel      = "ldtk.level"
	EventDiagnostic = "ldtk.diagnostic"
)

type LevelEventKind string

const (
	// LevelSpawnTriggered is pushed right before a level is built.
	LevelSpawnTriggered LevelEventKind = "spawn_triggered"
	// LevelSpawned is pushed once the level's whole subtree exists.
	LevelSpawned LevelEventKind = "spawned"
	// LevelDespawned is pushed after the level node is gone.
	LevelDespawned LevelEventKind = "despawned"
)

type LevelEvent struct {
	Kind  LevelEventKind
	World ecs.Entity
	Iid   string
}

func pushLevelEvent(w *ecs.World, kind LevelEventKind, world ecs.Entity, iid string) {
	w.Events().Push(ecs.Event{Type: EventLevel, Data: LevelEvent{Kind: kind, World: world, Iid: iid}})
}

func report(w *ecs.World, d entity.Diagnostic) {
	log.Printf("ldtk: %s", d)
	w.Events().Push(ecs.Event{Type: EventDiagnostic, Data: d})
}

// LevelEvents filters level events out of a drained queue.
func LevelEvents(events []ecs.Event) []LevelEvent {
	var out []LevelEvent
	for _, evt := range events {
		if le, ok := evt.Data.(LevelEvent); ok && evt.Type == EventLevel {
			out = append(out, le)
		}
	}
	return out
}

// Diagnostics filters diagnostics out of a drained queue.
func Diagnostics(events []ecs.Event) []entity.Diagnostic {
	var out []entity.Diagnostic
	for _, evt := range events {
		if d, ok := evt.Data.(entity.Diagnostic); ok && evt.Type == EventDiagnostic {
			out = append(out, d)
		}
	}
	return out
}
