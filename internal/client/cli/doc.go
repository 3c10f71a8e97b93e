// Package cli provides the interactive Forks command-line client.
//
// NewRootCmd wires configuration into a cobra command tree. The root command
// starts App: it connects to the gateway, tries the saved product key, asks
// for one otherwise, starts a background connectivity watcher and serves a
// REPL. What the REPL draws is decided by the router package from the
// vault session; every action goes through the vault.
//
// The keygen subcommand prints a fresh product key and exits.
package cli
