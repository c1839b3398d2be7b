package component

import "image/color"

// Level marks a level node. Its parent is the world node that spawned it.
type Level struct {
	Iid        string
	Identifier string
	Uid        int32
}

var LevelComponent = NewComponent[Level]()

// LevelBackground is the level's background colour and optional image.
type LevelBackground struct {
	Color     color.RGBA
	ImagePath string
	Width     int32
	Height    int32
}

var LevelBackgroundComponent = NewComponent[LevelBackground]()
