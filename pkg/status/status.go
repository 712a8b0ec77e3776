package status

import "fmt"

// Kind is the coarse state a component reports after evaluation.
// Severity grows with the value: Blocked > Waiting > Maintenance > Active.
type Kind int

const (
	Active Kind = iota
	Maintenance
	Waiting
	Blocked
)

func (k Kind) String() string {
	switch k {
	case Active:
		return "Active"
	case Maintenance:
		return "Maintenance"
	case Waiting:
		return "Waiting"
	case Blocked:
		return "Blocked"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Status is one component's verdict for a single reconciliation run.
type Status struct {
	Kind    Kind
	Message string
}

func (s Status) String() string {
	if s.Message == "" {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s: %s", s.Kind, s.Message)
}

func ActiveStatus() Status {
	return Status{Kind: Active}
}

func Maintenancef(format string, args ...any) Status {
	return Status{Kind: Maintenance, Message: fmt.Sprintf(format, args...)}
}

func Waitingf(format string, args ...any) Status {
	return Status{Kind: Waiting, Message: fmt.Sprintf(format, args...)}
}

func Blockedf(format string, args ...any) Status {
	return Status{Kind: Blocked, Message: fmt.Sprintf(format, args...)}
}

// Aggregate picks the most severe status among the evaluated ones.
// An empty input aggregates to Active: nothing ran, nothing objected.
func Aggregate(statuses []Status) Status {
	agg := ActiveStatus()
	for _, s := range statuses {
		if s.Kind > agg.Kind {
			agg = s
		}
	}
	return agg
}
