package components

// Position represents a world position in canvas pixels.
type Position struct {
	X, Y float64
}

// Velocity represents a drift velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Pinwheel marks an entity as a pinwheel vortex center.
type Pinwheel struct {
	Index int // Creation order, keeps snapshots stable
}

// Eddy describes an ocean current eddy.
type Eddy struct {
	Radius    float64 // px
	Strength  float64
	Clockwise bool
}
