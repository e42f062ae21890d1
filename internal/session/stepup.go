package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/common"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/models"
	"github.com/opencrew/orgcli/internal/store"
)

// GateState is the observable state of the step-up gate.
type GateState int32

const (
	GateIdle GateState = iota
	GateChecking
	GateChallengeRequired
	GateSatisfied
)

func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateChallengeRequired:
		return "challenge-required"
	case GateSatisfied:
		return "satisfied"
	default:
		return "idle"
	}
}

// StepUpResult is the outcome of a Require call.
type StepUpResult int

const (
	// StepUpSatisfied: the session meets the required security level; the
	// guarded action may proceed.
	StepUpSatisfied StepUpResult = iota + 1
	// StepUpAbandoned: the user cancelled the challenge; the guarded action
	// must not run. This is not an error.
	StepUpAbandoned
)

// Challenger supplies password attempts for a step-up challenge. attempt
// starts at 1; a value above 1 means the previous password was rejected.
// Returning ErrChallengeAbandoned cancels the challenge.
type Challenger interface {
	RequestPassword(ctx context.Context, attempt int) ([]byte, error)
}

// ChallengerFunc adapts a function to the Challenger interface.
type ChallengerFunc func(ctx context.Context, attempt int) ([]byte, error)

func (f ChallengerFunc) RequestPassword(ctx context.Context, attempt int) ([]byte, error) {
	return f(ctx, attempt)
}

// StepUpGate guards sensitive actions behind a minimum security-level (STL)
// check. The session is always fetched fresh from the API, never from the
// local stores, so the decision cannot act on stale role data.
//
// Require is awaitable and returns exactly once; there is no continuation
// that can silently never fire. At most one challenge runs at a time: a
// second caller gets ErrChallengeActive instead of silently displacing the
// first one's pending challenge.
type StepUpGate struct {
	api    api.Client
	stores *store.Stores
	log    logging.Logger

	mu    sync.Mutex
	state atomic.Int32
}

func NewStepUpGate(client api.Client, stores *store.Stores, log logging.Logger) *StepUpGate {
	return &StepUpGate{api: client, stores: stores, log: log}
}

// State reports the gate's current state for display purposes.
func (g *StepUpGate) State() GateState {
	return GateState(g.state.Load())
}

func (g *StepUpGate) setState(s GateState) {
	g.state.Store(int32(s))
}

// Require checks that the current session satisfies the required STL role,
// driving a password challenge through ch when it does not.
//
// Outcomes:
//   - the fresh session already meets the level: StepUpSatisfied, no
//     challenge is ever surfaced;
//   - the challenge succeeds: the newly issued credential is stored on the
//     client and in the credential store, then StepUpSatisfied;
//   - the challenger returns ErrChallengeAbandoned: StepUpAbandoned, nil;
//   - anything else (network failure, store failure): a zero result and the
//     error.
//
// A rejected password keeps the gate in the challenge state and asks ch
// again with an incremented attempt counter.
func (g *StepUpGate) Require(ctx context.Context, required models.Role, ch Challenger) (StepUpResult, error) {
	if !g.mu.TryLock() {
		return 0, ErrChallengeActive
	}
	defer g.mu.Unlock()
	defer func() {
		if g.State() != GateSatisfied {
			g.setState(GateIdle)
		}
	}()

	g.setState(GateChecking)

	sess, err := g.api.FetchSession(ctx)
	if err != nil {
		return 0, err
	}
	if models.MeetsSTL(sess.Roles, required) {
		g.setState(GateSatisfied)
		return StepUpSatisfied, nil
	}

	g.setState(GateChallengeRequired)
	g.log.Info(ctx, "step-up challenge required", "requiredRole", string(required))

	for attempt := 1; ; attempt++ {
		password, err := ch.RequestPassword(ctx, attempt)
		if errors.Is(err, ErrChallengeAbandoned) {
			g.log.Info(ctx, "step-up challenge abandoned", "attempt", attempt)
			return StepUpAbandoned, nil
		}
		if err != nil {
			return 0, err
		}

		tok, err := g.api.TokenWithPassword(ctx, password)
		common.WipeByteArray(password)
		if err != nil {
			if api.HasTag(err, api.TagForbidden) || api.HasTag(err, api.TagInvalidCredentials) {
				g.log.Warn(ctx, "step-up challenge failed", "attempt", attempt)
				continue
			}
			return 0, err
		}

		g.api.SetToken(tok.Token)
		if err := g.stores.Credential.Store(ctx, tok.Token); err != nil {
			return 0, err
		}

		g.setState(GateSatisfied)
		return StepUpSatisfied, nil
	}
}
