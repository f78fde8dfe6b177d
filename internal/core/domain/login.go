package domain

import "strings"

// LoginStage is the position of a visitor in the login/elevation flow.
type LoginStage string

const (
	StageInput             LoginStage = "input"
	StagePasswordChallenge LoginStage = "password_challenge"
	StageComplete          LoginStage = "complete"
)

// validLoginTransitions defines the allowed login state machine transitions.
// Logout is handled separately: it returns to StageInput from anywhere.
var validLoginTransitions = map[LoginStage][]LoginStage{
	StageInput:             {StagePasswordChallenge, StageComplete},
	StagePasswordChallenge: {StageComplete, StageInput},
	StageComplete:          {StageInput},
}

// CanTransitionTo reports whether a transition from current stage to next is valid.
func (s LoginStage) CanTransitionTo(next LoginStage) bool {
	for _, allowed := range validLoginTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known stages.
func (s LoginStage) Valid() bool {
	_, ok := validLoginTransitions[s]
	return ok
}

// Candidate is the name/contact pair remembered while the password challenge is open.
type Candidate struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// AdminKey is the reserved name/contact pair that opens the password challenge.
type AdminKey struct {
	Name    string
	Contact string
}

// Matches reports whether name/contact equal the reserved pair. The name is
// compared case-insensitively, the contact exactly; both must be non-empty.
func (k AdminKey) Matches(name, contact string) bool {
	name, contact = strings.TrimSpace(name), strings.TrimSpace(contact)
	if name == "" || contact == "" || k.Name == "" {
		return false
	}
	return strings.EqualFold(name, k.Name) && contact == k.Contact
}
