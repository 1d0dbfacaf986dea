package guard

import (
	"testing"

	"github.com/careerconnect/client/domain"
)

func snapshotFor(role domain.Role) domain.Snapshot {
	return domain.Snapshot{User: &domain.User{ID: 1, Name: "Test", Role: role}}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		snap   domain.Snapshot
		req    Requirement
		action Action
		target string
	}{
		{
			name:   "loading wins over everything",
			snap:   domain.Snapshot{Loading: true},
			req:    Requirement{Role: domain.RoleAdmin},
			action: ActionWait,
		},
		{
			name:   "loading wins on public routes too",
			snap:   domain.Snapshot{Loading: true},
			req:    Requirement{Public: true},
			action: ActionWait,
		},
		{
			name:   "anonymous on protected route goes to login",
			snap:   domain.Snapshot{},
			req:    Requirement{},
			action: ActionRedirect,
			target: TargetLogin,
		},
		{
			name:   "anonymous on role route goes to login not dashboard",
			snap:   domain.Snapshot{},
			req:    Requirement{Role: domain.RoleMentor},
			action: ActionRedirect,
			target: TargetLogin,
		},
		{
			name:   "anonymous may see public route",
			snap:   domain.Snapshot{},
			req:    Requirement{Public: true},
			action: ActionRender,
		},
		{
			name:   "authenticated is pushed off public routes",
			snap:   snapshotFor(domain.RoleStudent),
			req:    Requirement{Public: true},
			action: ActionRedirect,
			target: TargetDashboard,
		},
		{
			name:   "authenticated enters unrestricted route",
			snap:   snapshotFor(domain.RoleStudent),
			req:    Requirement{},
			action: ActionRender,
		},
		{
			name:   "matching role enters role route",
			snap:   snapshotFor(domain.RoleMentor),
			req:    Requirement{Role: domain.RoleMentor},
			action: ActionRender,
		},
		{
			name:   "role mismatch is a soft denial to the dashboard",
			snap:   snapshotFor(domain.RoleStudent),
			req:    Requirement{Role: domain.RoleAdmin},
			action: ActionRedirect,
			target: TargetDashboard,
		},
		{
			name:   "admin does not bypass other role routes",
			snap:   snapshotFor(domain.RoleAdmin),
			req:    Requirement{Role: domain.RoleStudent},
			action: ActionRedirect,
			target: TargetDashboard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.snap, tc.req)
			if got.Action != tc.action {
				t.Fatalf("expected action %s, got %s", tc.action, got.Action)
			}
			if got.Target != tc.target {
				t.Fatalf("expected target %q, got %q", tc.target, got.Target)
			}
		})
	}
}

func TestEvaluateNeverRedirectsLoadingSession(t *testing.T) {
	// A loading session carries no user yet; it must not be mistaken for an
	// anonymous one and bounced to login.
	got := Evaluate(domain.Snapshot{Loading: true}, Requirement{})
	if got.Action != ActionWait {
		t.Fatalf("expected wait, got %s", got.Action)
	}
	if got.Target != "" {
		t.Fatalf("expected no target, got %q", got.Target)
	}
}
