package scenes

import (
	"github.com/gonewx/drillship/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene       = (*DigScene)(nil)
	_ game.Closer = (*DigScene)(nil)
)
