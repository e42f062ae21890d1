package cli

import (
	"context"
	"os"

	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/session"
)

// challenger drives a step-up password challenge on the terminal. An empty
// password abandons the challenge instead of submitting it.
func (a *App) challenger() session.Challenger {
	return session.ChallengerFunc(func(ctx context.Context, attempt int) ([]byte, error) {
		if attempt > 1 {
			printlnFn("Password rejected, try again (leave empty to cancel).")
		} else {
			printlnFn("This action needs you to confirm your password (leave empty to cancel).")
		}
		password, err := getPassword("Confirm password", os.Stdout)
		if err != nil {
			return nil, err
		}
		if len(password) == 0 {
			return nil, session.ErrChallengeAbandoned
		}
		return password, nil
	})
}

// requireStepUp runs the step-up gate for the given role and reports whether
// the guarded action may proceed. An abandoned challenge prints a notice and
// returns false with no error.
func (a *App) requireStepUp(ctx context.Context, required models.Role) (bool, error) {
	result, err := a.gate.Require(ctx, required, a.challenger())
	if err != nil {
		return false, err
	}
	if result == session.StepUpAbandoned {
		printlnFn("Cancelled.")
		return false, nil
	}
	return true, nil
}
