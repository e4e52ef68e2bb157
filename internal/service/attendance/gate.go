package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type GateState string

const (
	GateNoRecord   GateState = "no_record"
	GateCheckedIn  GateState = "checked_in"
	GateCheckedOut GateState = "checked_out"
	GateOnLeave    GateState = "on_leave"
)

type GateAction string

const (
	ActionCheckIn  GateAction = "check_in"
	ActionCheckOut GateAction = "check_out"
)

// TodayView is the part of a fresh reconciled view the gate needs.
type TodayView struct {
	Day     clock.Day
	Record  *attendance.ReconciledDay
	OnLeave bool
}

// ResolveGateState derives the gate state from today's view. Leave is checked
// first. A record that exists without a check-in (an absence entry, say) is
// terminal for the day like a completed one.
func ResolveGateState(view TodayView) GateState {
	switch {
	case view.OnLeave:
		return GateOnLeave
	case view.Record == nil:
		return GateNoRecord
	case view.Record.CheckIn != nil && view.Record.CheckOut == nil:
		return GateCheckedIn
	default:
		return GateCheckedOut
	}
}

// Gate is the check-in/check-out permission machine of one employee for one
// day. It only moves when Refresh is given a view confirmed by the store.
type Gate struct {
	employeeID string
	view       TodayView
	state      GateState
}

func NewGate(employeeID string) *Gate {
	return &Gate{employeeID: employeeID, state: GateNoRecord}
}

// Refresh replaces the gate's view with a freshly loaded one.
func (g *Gate) Refresh(view TodayView) {
	g.view = view
	g.state = ResolveGateState(view)
}

func (g *Gate) EmployeeID() string { return g.employeeID }

func (g *Gate) State() GateState { return g.state }

func (g *Gate) Day() clock.Day { return g.view.Day }

func (g *Gate) OnLeave() bool { return g.view.OnLeave }

// Today returns today's reconciled record, if any.
func (g *Gate) Today() *attendance.ReconciledDay { return g.view.Record }

func (g *Gate) CanCheckIn() bool {
	return g.Authorize(ActionCheckIn) == nil
}

func (g *Gate) CanCheckOut() bool {
	return g.Authorize(ActionCheckOut) == nil
}

// Authorize returns nil when action is allowed from the current state, or a
// gate violation otherwise.
func (g *Gate) Authorize(action GateAction) error {
	if g.state == GateOnLeave {
		return attendance.ErrOnLeave
	}

	switch action {
	case ActionCheckIn:
		switch g.state {
		case GateNoRecord:
			return nil
		case GateCheckedIn:
			return attendance.ErrAlreadyCheckedIn
		default:
			return attendance.ErrAlreadyCheckedOut
		}
	case ActionCheckOut:
		switch g.state {
		case GateCheckedIn:
			return nil
		case GateNoRecord:
			return attendance.ErrNotCheckedIn
		default:
			return attendance.ErrAlreadyCheckedOut
		}
	}
	return attendance.ErrGateViolation
}

// Message is a short user-facing description of the current state.
func (g *Gate) Message() string {
	switch g.state {
	case GateOnLeave:
		return "You are on approved leave today"
	case GateCheckedIn:
		return "You are checked in. Don't forget to check out"
	case GateCheckedOut:
		return "Attendance for today is complete"
	default:
		return "You have not checked in today"
	}
}
