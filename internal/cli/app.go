package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/config"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/session"
	"github.com/opencrew/orgcli/internal/store"
)

// mailLanguage is sent with every mail-triggering endpoint so the backend
// localizes outgoing messages.
const mailLanguage = "en"

// timeNow is a test seam for time.Now.
var timeNow = time.Now

// App is the interactive client. All collaborators are injected; nothing is
// read from ambient globals, so tests can assemble an App around fakes.
type App struct {
	config   *config.Config
	api      api.Client
	stores   *store.Stores
	resolver *session.Resolver
	gate     *session.StepUpGate
	log      logging.Logger

	userEmail  string
	orgProfile string
	reader     *bufio.Reader
}

func NewApp(c *config.Config, client api.Client, stores *store.Stores, log logging.Logger) *App {
	return &App{
		config:   c,
		api:      client,
		stores:   stores,
		resolver: session.NewResolver(client, stores, log),
		gate:     session.NewStepUpGate(client, stores, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}
}

// Restore loads previously persisted state: the stored credential (dropped
// when already expired) and the selected organization. It never fails the
// startup; a user with dead state simply starts logged out.
func (a *App) Restore(ctx context.Context) {
	token, err := a.stores.Credential.Get(ctx)
	if err != nil || token == "" {
		return
	}
	if session.TokenExpired(token, timeNow()) {
		a.log.Info(ctx, "stored credential expired, discarding")
		if err := a.stores.ClearAuthentication(ctx); err != nil {
			a.log.Warn(ctx, "clearing expired state", "error", err)
		}
		return
	}

	a.api.SetToken(token)

	if us, err := a.stores.Session.Get(ctx); err == nil && us != nil {
		a.userEmail = us.User.PrimaryEmail
	}
	if octx, err := a.stores.OrgContext.Get(ctx); err == nil && octx != nil {
		a.orgProfile = octx.Organization.ProfileName
	}
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

// getStatus renders the prompt status as "(user @ organization)".
func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	s := a.userEmail
	if a.orgProfile != "" {
		s = s + " @ " + a.orgProfile
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores persisted state and starts the REPL. It blocks until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.Restore(ctx)
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to orgcli (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
