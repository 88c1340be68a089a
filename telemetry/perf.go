package telemetry

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of an animator step.
type Phase uint8

const (
	PhaseTimers    Phase = iota // Pulse and wave anchors
	PhaseVortices               // Pinwheel and eddy drift
	PhaseTargets                // Field function evaluation
	PhaseIntegrate              // Easing and render factors
	PhasePublish                // Front buffer swap
	numPhases
)

var phaseNames = [numPhases]string{"timers", "vortices", "targets", "integrate", "publish"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// stepSample is the timing of one Step call.
type stepSample struct {
	typ    string
	cells  int
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times animator steps over a ring of recent samples. Steps
// are tagged with the field type so a type switch shows up in the averages.
type PerfCollector struct {
	mu  sync.Mutex
	now func() time.Time

	ring  []stepSample
	next  int
	count int

	cur        stepSample
	stepStart  time.Time
	markStart  time.Time
	active     Phase
	inStep     bool
	phaseValid bool

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector keeps the last window steps (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, ring: make([]stepSample, window)}
}

// Begin starts timing a step of the given field type.
func (p *PerfCollector) Begin(typ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.now()
	p.cur = stepSample{typ: typ}
	p.stepStart = t
	p.inStep = true
	p.phaseValid = false
}

// Mark closes the running phase and opens phase.
func (p *PerfCollector) Mark(phase Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inStep || phase >= numPhases {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.active = phase
	p.markStart = t
	p.phaseValid = true
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.phaseValid {
		p.cur.phases[p.active] += t.Sub(p.markStart)
	}
}

// End records the step over cells cells.
func (p *PerfCollector) End(cells int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inStep {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.cur.cells = cells
	p.cur.total = t.Sub(p.stepStart)
	p.inStep = false
	p.phaseValid = false

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a displayed frame (viewer mode).
func (p *PerfCollector) RecordFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDur = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PerfStats summarises the sampled steps.
type PerfStats struct {
	Steps int

	AvgStep time.Duration
	P95Step time.Duration
	MaxStep time.Duration

	// Cells integrated per second of step time.
	CellsPerSec float64

	// Share of step time per phase, in percent.
	PhaseShare [numPhases]float64

	// Average step time per field type seen in the window.
	ByType map[string]time.Duration

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := PerfStats{Steps: p.count, ByType: make(map[string]time.Duration), FrameDuration: p.frameDur}
	if p.frameDur > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.count == 0 {
		return out
	}

	totals := make([]float64, p.count)
	var phaseSum [numPhases]time.Duration
	var cells int
	var elapsed time.Duration
	typeSum := make(map[string]time.Duration)
	typeN := make(map[string]int)
	for i, s := range p.ring[:p.count] {
		totals[i] = float64(s.total)
		elapsed += s.total
		cells += s.cells
		for ph, d := range s.phases {
			phaseSum[ph] += d
		}
		typeSum[s.typ] += s.total
		typeN[s.typ]++
	}

	out.AvgStep = time.Duration(stat.Mean(totals, nil))
	sort.Float64s(totals)
	out.P95Step = time.Duration(Percentile(totals, 0.95))
	out.MaxStep = time.Duration(totals[len(totals)-1])
	if elapsed > 0 {
		out.CellsPerSec = float64(cells) / elapsed.Seconds()
		for ph, d := range phaseSum {
			out.PhaseShare[ph] = float64(d) / float64(elapsed) * 100
		}
	}
	for typ, sum := range typeSum {
		out.ByType[typ] = sum / time.Duration(typeN[typ])
	}
	return out
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("p95_step_us", s.P95Step.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Float64("cells_per_sec", s.CellsPerSec),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhaseShare[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Frame        int64   `csv:"frame"`
	Type         string  `csv:"type"`
	Steps        int     `csv:"steps"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	P95StepUS    int64   `csv:"p95_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	TypeAvgUS    int64   `csv:"type_avg_step_us"`
	CellsPerSec  float64 `csv:"cells_per_sec"`
	FPS          float64 `csv:"fps"`
	TimersPct    float64 `csv:"timers_pct"`
	VorticesPct  float64 `csv:"vortices_pct"`
	TargetsPct   float64 `csv:"targets_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	PublishPct   float64 `csv:"publish_pct"`
}

// ToCSV flattens the stats for frame, reporting the per-type average of typ.
func (s PerfStats) ToCSV(frame int64, typ string) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		Type:         typ,
		Steps:        s.Steps,
		AvgStepUS:    s.AvgStep.Microseconds(),
		P95StepUS:    s.P95Step.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		TypeAvgUS:    s.ByType[typ].Microseconds(),
		CellsPerSec:  s.CellsPerSec,
		FPS:          s.FPS,
		TimersPct:    s.PhaseShare[PhaseTimers],
		VorticesPct:  s.PhaseShare[PhaseVortices],
		TargetsPct:   s.PhaseShare[PhaseTargets],
		IntegratePct: s.PhaseShare[PhaseIntegrate],
		PublishPct:   s.PhaseShare[PhasePublish],
	}
}
