package parquet

// State is one step of the per-file Parquet pipeline state machine (spec
// §4.H): IDLE → ACQUIRING_BYTES → VALIDATING → (ENGINE_INIT?) → REGISTERED
// → DETECTING_GEO → (GEO_BRANCH | PLAIN_BRANCH) → MATERIALIZING →
// BUILDING_TABLE → CLEANUP → DONE | ERROR→CLEANUP→FAILED.
type State int

const (
	StateIdle State = iota
	StateAcquiringBytes
	StateValidating
	StateEngineInit
	StateRegistered
	StateDetectingGeo
	StateGeoBranch
	StatePlainBranch
	StateMaterializing
	StateBuildingTable
	StateCleanup
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAcquiringBytes:
		return "ACQUIRING_BYTES"
	case StateValidating:
		return "VALIDATING"
	case StateEngineInit:
		return "ENGINE_INIT"
	case StateRegistered:
		return "REGISTERED"
	case StateDetectingGeo:
		return "DETECTING_GEO"
	case StateGeoBranch:
		return "GEO_BRANCH"
	case StatePlainBranch:
		return "PLAIN_BRANCH"
	case StateMaterializing:
		return "MATERIALIZING"
	case StateBuildingTable:
		return "BUILDING_TABLE"
	case StateCleanup:
		return "CLEANUP"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// StateFunc, when set as Options.OnState, is invoked on every state
// transition, letting a caller observe that the machine visits CLEANUP on
// both success and failure.
type StateFunc func(State)
