package core

// GameState is the summary handed to the platform after every tick.
type GameState struct {
	Score int // Current snake length
}
