package hamaes

// Step identifies one guarded round transform.
type Step int

const (
	StepAddRoundKey Step = iota
	StepSubBytes
	StepShiftRows
	StepMixColumns
)

func (s Step) String() string {
	switch s {
	case StepAddRoundKey:
		return "AddRoundKey"
	case StepSubBytes:
		return "SubBytes"
	case StepShiftRows:
		return "ShiftRows"
	case StepMixColumns:
		return "MixColumns"
	}
	return "unknown"
}

// Steps lists the guarded transforms in encryption order.
var Steps = []Step{StepSubBytes, StepShiftRows, StepMixColumns, StepAddRoundKey}

// FaultHook is called on every guarded step after the transform has
// mutated the state and before the observed integrity code is derived.
// That window models a transient upset of the working state: experiments
// flip state bits here and the verification step must catch them.
type FaultHook func(step Step, round int, st *State)

// SetFaultHook installs (or, with nil, removes) the injection hook.
func (c *Ctx) SetFaultHook(h FaultHook) { c.faultHook = h }

func (c *Ctx) inject(step Step, round int, st *State) {
	if c.faultHook != nil {
		c.faultHook(step, round, st)
	}
}
