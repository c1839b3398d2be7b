package system

import (
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/settings"
)

// NewLevelScheduler returns the systems that keep LDtk worlds spawned, in the
// order they have to run each frame.
func NewLevelScheduler(s settings.Settings, registry *entity.Registry) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewLevelSelectionSystem(s),
		NewLevelSetSystem(s, registry),
		NewWorldlySystem(),
	)
}
