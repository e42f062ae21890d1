package session

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingOrganizationContext is returned by Resolve when no
	// organization profile name is available to resolve against.
	ErrMissingOrganizationContext = errors.New("no organization profile name provided")

	// ErrSuperseded marks a resolution that lost to a newer one started while
	// it was in flight; its results were discarded, nothing was persisted.
	ErrSuperseded = errors.New("resolution superseded by a newer request")

	// ErrChallengeActive is returned by the step-up gate when a challenge is
	// already being driven for another caller.
	ErrChallengeActive = errors.New("a step-up challenge is already active")

	// ErrChallengeAbandoned is returned by a Challenger to signal the user
	// cancelled the password prompt. The gate folds it into StepUpAbandoned.
	ErrChallengeAbandoned = errors.New("step-up challenge abandoned")
)

// ResolutionError wraps the first failure of the multi-step organization
// resolution sequence. None of the stores were mutated.
type ResolutionError struct {
	ProfileName string
	Err         error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving organization %q: %v", e.ProfileName, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
