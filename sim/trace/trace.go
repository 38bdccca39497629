package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every firing and every leap attempt.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// MaxRecords caps each record list; 0 means unbounded. Records past the
	// cap are counted but not stored.
	MaxRecords int
}

// SimulationTrace collects event records during a run.
type SimulationTrace struct {
	Config  TraceConfig
	Firings []FiringRecord
	Leaps   []LeapRecord
	Dropped int
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Firings: make([]FiringRecord, 0),
		Leaps:   make([]LeapRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelEvents
}

func (st *SimulationTrace) full(n int) bool {
	if st.Config.MaxRecords > 0 && n >= st.Config.MaxRecords {
		st.Dropped++
		return true
	}
	return false
}

// RecordFiring appends a firing record.
func (st *SimulationTrace) RecordFiring(record FiringRecord) {
	if st.full(len(st.Firings)) {
		return
	}
	st.Firings = append(st.Firings, record)
}

// RecordLeap appends a leap record.
func (st *SimulationTrace) RecordLeap(record LeapRecord) {
	if st.full(len(st.Leaps)) {
		return
	}
	st.Leaps = append(st.Leaps, record)
}
