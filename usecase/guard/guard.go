// Package guard decides whether a protected view may be shown for the
// current session. It is a pure function of the session snapshot and the
// route requirement; it keeps no state between evaluations.
package guard

import "github.com/careerconnect/client/domain"

// Navigation targets used by redirect decisions.
const (
	TargetLogin     = "/login"
	TargetDashboard = "/dashboard"
)

// Action is the three-way outcome of an evaluation.
type Action int

const (
	// ActionWait means the session is still loading; show a neutral
	// placeholder and re-evaluate later. Not a decision.
	ActionWait Action = iota
	// ActionRedirect means access is denied here; go to Decision.Target.
	ActionRedirect
	// ActionRender means the protected content may be shown.
	ActionRender
)

func (a Action) String() string {
	switch a {
	case ActionWait:
		return "wait"
	case ActionRedirect:
		return "redirect"
	case ActionRender:
		return "render"
	}
	return "unknown"
}

// Requirement describes what a route demands. The zero value is an ordinary
// protected route: any authenticated user may enter.
type Requirement struct {
	// Public marks a public-only entry point (login, registration):
	// authenticated sessions are redirected away instead of in.
	Public bool
	// Role restricts the route to one role. Empty means no role constraint.
	Role domain.Role
}

// Decision is the evaluation outcome. Target is set only for redirects.
type Decision struct {
	Action Action
	Target string
}

// Evaluate applies the gating rules in order: loading wins over everything,
// authentication over role, and a failed role check is a soft denial back to
// the dashboard, never to login.
func Evaluate(snap domain.Snapshot, req Requirement) Decision {
	if snap.Loading {
		return Decision{Action: ActionWait}
	}

	if req.Public {
		if snap.Authenticated() {
			return Decision{Action: ActionRedirect, Target: TargetDashboard}
		}
		return Decision{Action: ActionRender}
	}

	if !snap.Authenticated() {
		return Decision{Action: ActionRedirect, Target: TargetLogin}
	}
	if req.Role != "" && snap.Role() != req.Role {
		return Decision{Action: ActionRedirect, Target: TargetDashboard}
	}
	return Decision{Action: ActionRender}
}
