// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import "fmt"

// Phase identifies a step in an extraction run's lifecycle. Profile runs
// spend their expansion loop in PhaseExpanding, citation runs in
// PhasePaginating; everything else is shared.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseNavigating   Phase = "navigating"
	PhaseExpanding    Phase = "expanding"
	PhasePaginating   Phase = "paginating"
	PhaseParsing      Phase = "parsing"
	PhaseIntervention Phase = "manual-intervention"
	PhaseDone         Phase = "done"
	PhaseFailed       Phase = "failed"
)

// phaseSuccessors lists the legal next phases of each phase. PhaseDone and
// PhaseFailed are terminal.
var phaseSuccessors = map[Phase][]Phase{
	PhaseIdle:         {PhaseNavigating},
	PhaseNavigating:   {PhaseExpanding, PhasePaginating, PhaseFailed},
	PhaseExpanding:    {PhaseParsing, PhaseIntervention, PhaseFailed},
	PhasePaginating:   {PhaseParsing, PhaseIntervention, PhaseDone, PhaseFailed},
	PhaseParsing:      {PhasePaginating, PhaseDone, PhaseFailed},
	PhaseIntervention: {PhaseExpanding, PhasePaginating, PhaseFailed},
	PhaseDone:         {},
	PhaseFailed:       {},
}

// Machine tracks the lifecycle of one extraction run and reports every
// transition to an optional observer. Each extractor owns its own Machine;
// there is no shared run state. The zero Machine starts in PhaseIdle.
type Machine struct {
	phase    Phase
	observer func(from, to Phase)
}

// NewMachine returns a Machine in PhaseIdle. observer may be nil.
func NewMachine(observer func(from, to Phase)) *Machine {
	return &Machine{observer: observer}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	if m.phase == "" {
		return PhaseIdle
	}
	return m.phase
}

// To moves the machine to next. An illegal transition is a programming
// error in the extraction loop and is returned rather than applied.
func (m *Machine) To(next Phase) error {
	from := m.Phase()
	if !legalTransition(from, next) {
		return fmt.Errorf("illegal phase transition %s -> %s", from, next)
	}
	m.phase = next
	if m.observer != nil {
		m.observer(from, next)
	}
	return nil
}

// Terminal reports whether the machine reached PhaseDone or PhaseFailed.
func (m *Machine) Terminal() bool {
	p := m.Phase()
	return p == PhaseDone || p == PhaseFailed
}

func legalTransition(from, to Phase) bool {
	for _, p := range phaseSuccessors[from] {
		if p == to {
			return true
		}
	}
	return false
}
