// Package cli provides the interactive orgcli command-line client.
//
// It wires configuration, local state stores, the REST API client, the
// organization context resolver and the step-up gate into an interactive
// REPL. Typical flow: restore the stored credential, resolve the previously
// selected organization, and execute user commands.
//
// Key features:
//   - Register / Login / Logout against the platform backend
//   - Select an organization by profile name ("use acme")
//   - Manage members, invites and roles of the selected organization
//   - Browse projects
//   - Account maintenance: profile, password, email, recovery
//
// Sensitive commands re-authenticate through the step-up gate before they
// run. The REPL is started via App.Root(ctx), which blocks until the user
// exits.
package cli
