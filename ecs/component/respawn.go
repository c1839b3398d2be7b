package component

// Respawn is a one-shot marker. Put it on a world or level node to tear that
// node's contents down and rebuild them on the next reconciliation pass. The
// pass removes it; it never outlives the rebuild it asked for.
type Respawn struct{}

var RespawnComponent = NewComponent[Respawn]()
