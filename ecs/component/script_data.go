package component

// ScriptData is the map a spawn script left in its data global.
type ScriptData struct {
	Script string
	Values map[string]any
}

var ScriptDataComponent = NewComponent[ScriptData]()
