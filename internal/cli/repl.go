package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Orgs(ctx context.Context) error
	Use(ctx context.Context, profileName string) error
	CreateOrg(ctx context.Context) error

	Members(ctx context.Context) error
	SetRoles(ctx context.Context) error
	RemoveMember(ctx context.Context) error
	TransferOwnership(ctx context.Context) error

	Invite(ctx context.Context) error
	Invites(ctx context.Context) error
	RevokeInvite(ctx context.Context) error
	ResendInvite(ctx context.Context) error
	Join(ctx context.Context, inviteToken string) error

	Projects(ctx context.Context) error
	Project(ctx context.Context, profileName string) error

	UpdateAccount(ctx context.Context) error
	Passwd(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	UpdateEmail(ctx context.Context) error
	ConfirmEmail(ctx context.Context) error
	SendConfirmationMail(ctx context.Context) error
	RecoverPassword(ctx context.Context) error
}

// run executes a command handler and prints its error, if any, in a
// user-friendly form. Handlers stay free of presentation concerns.
func run(err error) {
	if err != nil {
		printlnFn("Error:", humanize(err))
	}
}

// runREPL starts a simple read-eval-print loop for the orgcli client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                  show available commands
//	  - register              create an account
//	  - login                 authenticate
//	  - recover-password      request a password recovery mail
//	  - confirm-email         confirm the primary email with a mailed token
//	  - join <token>          accept an organization invite
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - whoami                show the authenticated user and organization
//	  - orgs                  list organizations you belong to
//	  - use <profile>         select an organization by profile name
//	  - create-org            create a new organization
//	  - members               list members of the selected organization
//	  - set-roles             change a member's roles
//	  - remove-member         remove a member
//	  - transfer-ownership    transfer organization ownership
//	  - invite | invites      create / list invites
//	  - revoke-invite         revoke a pending invite
//	  - resend-invite         resend an invite mail
//	  - projects              list projects of the selected organization
//	  - project <profile>     show a single project
//	  - update-account        change presentation name / region
//	  - passwd                change the password
//	  - change-email          request a primary email change
//	  - update-email          apply an email change with a mailed token
//	  - send-confirmation-mail  resend the confirmation mail
//	  - logout                log out
//	  - exit | quit           leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("orgcli %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, orgs, use <profile>, create-org, members, set-roles, remove-member, transfer-ownership, invite, invites, revoke-invite, resend-invite, join <token>, projects, project <profile>, update-account, passwd, change-email, update-email, confirm-email, send-confirmation-mail, logout, exit")
			} else {
				printlnFn("Available commands: register, login, recover-password, confirm-email, join <token>, exit")
			}

		case "register":
			run(a.Register(ctx))

		case "login":
			run(a.Login(ctx))

		case "logout":
			run(a.Logout(ctx))

		case "whoami":
			run(a.Whoami(ctx))

		case "orgs":
			run(a.Orgs(ctx))

		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <profile>")
				continue
			}
			run(a.Use(ctx, args[0]))

		case "create-org":
			run(a.CreateOrg(ctx))

		case "members":
			run(a.Members(ctx))

		case "set-roles":
			run(a.SetRoles(ctx))

		case "remove-member":
			run(a.RemoveMember(ctx))

		case "transfer-ownership":
			run(a.TransferOwnership(ctx))

		case "invite":
			run(a.Invite(ctx))

		case "invites":
			run(a.Invites(ctx))

		case "revoke-invite":
			run(a.RevokeInvite(ctx))

		case "resend-invite":
			run(a.ResendInvite(ctx))

		case "join":
			if len(args) == 0 {
				printlnFn("Usage: join <token>")
				continue
			}
			run(a.Join(ctx, args[0]))

		case "projects":
			run(a.Projects(ctx))

		case "project":
			if len(args) == 0 {
				printlnFn("Usage: project <profile>")
				continue
			}
			run(a.Project(ctx, args[0]))

		case "update-account":
			run(a.UpdateAccount(ctx))

		case "passwd":
			run(a.Passwd(ctx))

		case "change-email":
			run(a.ChangeEmail(ctx))

		case "update-email":
			run(a.UpdateEmail(ctx))

		case "confirm-email":
			run(a.ConfirmEmail(ctx))

		case "send-confirmation-mail":
			run(a.SendConfirmationMail(ctx))

		case "recover-password":
			run(a.RecoverPassword(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
