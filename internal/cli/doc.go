// Package cli provides the interactive ClassNote command-line client.
//
// It wires configuration, the local SQLite store, the HTTP API client, the
// offline action queue and a background connectivity watcher, then runs an
// interactive read loop. Server-bound commands enqueue durable actions; the
// queue drains them whenever the server is reachable, so every command works
// offline.
//
// The loop is started via App.Run(ctx), which blocks until the user exits.
// See App, Root and the per-command files for details.
package cli
