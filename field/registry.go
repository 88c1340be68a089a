package field

// Descriptor describes one selectable field function.
type Descriptor struct {
	Type           string // Settings tag
	Name           string // Display name
	Description    string
	Category       string // Grouping (e.g., "wave", "vortex", "neighbor")
	Fn             Func
	NeedsNeighbors bool // Reads other cells' current angles
}

// DefaultType is used for unknown or empty type tags.
const DefaultType = "smoothWaves"

// Registry is the dispatch table from type tag to field function.
type Registry struct {
	entries []Descriptor
	byType  map[string]int
}

// NewRegistry creates a registry with all built-in field functions.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[string]int)}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	// Waves
	r.Register(Descriptor{Type: "smoothWaves", Name: "Smooth Waves", Description: "Crossed sine and cosine waves", Category: "wave", Fn: smoothWaves})
	r.Register(Descriptor{Type: "seaWaves", Name: "Sea Waves", Description: "Two blended sinusoids", Category: "wave", Fn: seaWaves})
	r.Register(Descriptor{Type: "rippleEffect", Name: "Ripple", Description: "Radial ripple around the center or pointer", Category: "wave", Fn: rippleEffect})
	r.Register(Descriptor{Type: "expandingWave", Name: "Expanding Wave", Description: "Ring-by-ring wipe from the center", Category: "wave", Fn: expandingWave})
	r.Register(Descriptor{Type: "waterfall", Name: "Waterfall", Description: "Falling flow with gravity stretch", Category: "wave", Fn: waterfall})
	r.Register(Descriptor{Type: "followPath", Name: "Follow Path", Description: "Cells near a sine path follow its slope", Category: "wave", Fn: followPath})

	// Vortices
	r.Register(Descriptor{Type: "pinwheels", Name: "Pinwheels", Description: "Drifting rotating centers", Category: "vortex", Fn: pinwheels})
	r.Register(Descriptor{Type: "centerPulse", Name: "Center Pulse", Description: "Periodic radial burst with swirl", Category: "vortex", Fn: centerPulse})
	r.Register(Descriptor{Type: "vortex", Name: "Vortex", Description: "Tangential flow with inward pull", Category: "vortex", Fn: vortex})
	r.Register(Descriptor{Type: "oceanCurrents", Name: "Ocean Currents", Description: "Wave baseline bent by eddies", Category: "vortex", Fn: oceanCurrents})
	r.Register(Descriptor{Type: "geometricPattern", Name: "Geometric", Description: "Rotating tangent, speed scaled", Category: "vortex", Fn: geometricPattern})
	r.Register(Descriptor{Type: "tangenteClasica", Name: "Classic Tangent", Description: "Rotating tangent, fixed rate", Category: "vortex", Fn: tangenteClasica})

	// Targets and noise
	r.Register(Descriptor{Type: "lissajous", Name: "Lissajous", Description: "Point at a moving Lissajous target", Category: "target", Fn: lissajous})
	r.Register(Descriptor{Type: "mouseInteraction", Name: "Mouse", Description: "Point at the pointer when close", Category: "target", Fn: mouseInteraction})
	r.Register(Descriptor{Type: "perlinFlow", Name: "Perlin Flow", Description: "Gradient noise flow field", Category: "noise", Fn: perlinFlow})
	r.Register(Descriptor{Type: "jitter", Name: "Jitter", Description: "Smooth waves with random shake", Category: "noise", Fn: jitter})

	// Neighbor-aware
	r.Register(Descriptor{Type: "cellularAutomata", Name: "Cellular Automata", Description: "Relax toward neighbor consensus", Category: "neighbor", Fn: cellularAutomata, NeedsNeighbors: true})
	r.Register(Descriptor{Type: "flocking", Name: "Flocking", Description: "Boids alignment, cohesion and separation", Category: "neighbor", Fn: flocking, NeedsNeighbors: true})
}

// Register adds or replaces a field function.
func (r *Registry) Register(d Descriptor) {
	if i, ok := r.byType[d.Type]; ok {
		r.entries[i] = d
		return
	}
	r.byType[d.Type] = len(r.entries)
	r.entries = append(r.entries, d)
}

// Lookup returns the descriptor for typ. Unknown tags resolve to smooth
// waves with ok=false so the caller can warn.
func (r *Registry) Lookup(typ string) (Descriptor, bool) {
	if i, ok := r.byType[typ]; ok {
		return r.entries[i], true
	}
	return r.entries[r.byType[DefaultType]], false
}

// All returns every descriptor in registration order.
func (r *Registry) All() []Descriptor {
	return r.entries
}

// Types returns every type tag in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.entries))
	for i, d := range r.entries {
		out[i] = d.Type
	}
	return out
}

// Index returns the position of typ in registration order, or -1.
func (r *Registry) Index(typ string) int {
	if i, ok := r.byType[typ]; ok {
		return i
	}
	return -1
}
