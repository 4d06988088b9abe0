// Package cli provides the interactive TaskKeeper command-line client.
//
// It wires configuration, the local store, the remote API client, and the
// availability dispatcher into an interactive REPL that works online and
// offline. Typical flow: prompt for credentials, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - register / login / logout / whoami
//   - profile and password maintenance, account deletion
//   - task CRUD: add, list (with filters), show, done, update, delete
//   - per-status task statistics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
