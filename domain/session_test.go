package domain

import "testing"

func TestSnapshotPredicates(t *testing.T) {
	anon := Snapshot{}
	if anon.Authenticated() || anon.IsStudent() || anon.IsMentor() || anon.IsAdmin() {
		t.Fatal("anonymous snapshot must answer false everywhere")
	}
	if anon.Role() != "" {
		t.Fatalf("expected empty role, got %q", anon.Role())
	}

	student := Snapshot{User: &User{Role: RoleStudent}}
	if !student.Authenticated() || !student.IsStudent() {
		t.Fatal("expected authenticated student")
	}
	if student.IsMentor() || student.IsAdmin() {
		t.Fatal("role predicates must be exclusive")
	}

	loading := Snapshot{Loading: true}
	if loading.Authenticated() {
		t.Fatal("loading snapshot carries no identity yet")
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleMentor, RoleAdmin} {
		if !role.Valid() {
			t.Fatalf("expected %s valid", role)
		}
	}
	if Role("superuser").Valid() {
		t.Fatal("unknown role must be invalid")
	}
	if Role("").Valid() {
		t.Fatal("empty role must be invalid")
	}
}

func TestErrorMessage(t *testing.T) {
	if msg := ErrorMessage(NewError(ErrCodeInvalid, "bad input"), "fallback"); msg != "bad input" {
		t.Fatalf("expected carried message, got %q", msg)
	}
	if msg := ErrorMessage(WrapError(ErrCodeInternal, "", nil), "fallback"); msg != "fallback" {
		t.Fatalf("expected fallback for empty message, got %q", msg)
	}
	if msg := ErrorMessage(nil, "fallback"); msg != "fallback" {
		t.Fatalf("expected fallback for nil error, got %q", msg)
	}
}

func TestHasRoleNilSafe(t *testing.T) {
	var u *User
	if u.HasRole(RoleAdmin) {
		t.Fatal("nil user has no role")
	}
}
