// Package cli provides the interactive kioskadmin console.
//
// It wires configuration, the local session database, the authenticated API
// client and an interactive REPL. Typical flow: restore the saved session or
// prompt for credentials, start a background connectivity watcher, then
// execute user commands against the backend.
//
// Commands are gated by the signed-in role. When the backend session expires
// for good, the console prints a notice and returns to the login prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
