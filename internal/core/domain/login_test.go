package domain

import "testing"

func TestLoginStage_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to LoginStage
		want     bool
	}{
		{StageInput, StagePasswordChallenge, true},
		{StageInput, StageComplete, true},
		{StagePasswordChallenge, StageComplete, true},
		{StagePasswordChallenge, StageInput, true},
		{StageComplete, StageInput, true},
		{StageComplete, StagePasswordChallenge, false},
		{StageInput, StageInput, false},
		{LoginStage("bogus"), StageComplete, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestAdminKey_Matches(t *testing.T) {
	key := AdminKey{Name: "ADMIN", Contact: "2002"}

	if !key.Matches("admin", "2002") {
		t.Error("expected case-insensitive name match")
	}
	if !key.Matches(" Admin ", "2002") {
		t.Error("expected surrounding spaces to be ignored")
	}
	if key.Matches("ADMIN", "2003") {
		t.Error("wrong contact must not match")
	}
	if key.Matches("root", "2002") {
		t.Error("wrong name must not match")
	}
	if key.Matches("", "") {
		t.Error("empty pair must not match")
	}
	if (AdminKey{}).Matches("ADMIN", "2002") {
		t.Error("a disabled key must not match")
	}
}
