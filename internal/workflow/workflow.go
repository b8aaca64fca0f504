package workflow

import "strings"

// Status is an inquiry lifecycle state. The two workflows below share the
// type but never share transitions.
type Status string

const (
	StatusNew            Status = "new"
	StatusAssigned       Status = "assigned"
	StatusTalked         Status = "talked"
	StatusVisitScheduled Status = "visit_scheduled"
	StatusVisitConfirmed Status = "visit_confirmed"
	StatusClosed         Status = "closed"

	// StatusContacted exists only in the admin triage workflow.
	StatusContacted Status = "contacted"
)

// agentPipeline is the ordered, forward-only lifecycle a lead moves through
// once agents are in the picture. closed is terminal; there is no reopening
// here.
var agentPipeline = []Status{
	StatusNew,
	StatusAssigned,
	StatusTalked,
	StatusVisitScheduled,
	StatusVisitConfirmed,
	StatusClosed,
}

// AgentPipeline is the five/six-state agent-facing workflow.
type AgentPipeline struct{}

// States returns the lifecycle in order.
func (AgentPipeline) States() []Status {
	out := make([]Status, len(agentPipeline))
	copy(out, agentPipeline)
	return out
}

// Valid reports membership in the pipeline.
func (AgentPipeline) Valid(s Status) bool {
	for _, st := range agentPipeline {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the state immediately following s, or false when s is
// terminal or not a pipeline state. Callers render a single "advance"
// action from this rather than exposing the whole set.
func (AgentPipeline) Next(s Status) (Status, bool) {
	for i, st := range agentPipeline {
		if st == s {
			if i == len(agentPipeline)-1 {
				return "", false
			}
			return agentPipeline[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether moving from -> to is a legal pipeline step.
// Only the single forward step is allowed.
func (p AgentPipeline) CanTransition(from, to Status) bool {
	next, ok := p.Next(from)
	return ok && next == to
}

// adminTriage is the simpler pre-assignment workflow used by the general
// admin inquiry table. Reopening closed -> new is explicitly allowed here
// and nowhere else.
var adminTriage = map[Status][]Status{
	StatusNew:       {StatusContacted},
	StatusContacted: {StatusClosed, StatusNew},
	StatusClosed:    {StatusNew},
}

// AdminTriage is the three-state admin workflow.
type AdminTriage struct{}

// Valid reports membership in the triage set.
func (AdminTriage) Valid(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// CanTransition reports whether moving from -> to is allowed in triage.
func (AdminTriage) CanTransition(from, to Status) bool {
	for _, allowed := range adminTriage[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Label humanizes a status for display and auto-generated log messages:
// "visit_scheduled" becomes "visit scheduled".
func Label(s Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
