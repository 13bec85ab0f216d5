// Package cli provides the interactive gophledger terminal client.
//
// It wires configuration, on-device storage, the backend gateway and the
// client stores, then runs a REPL. Typical flow: sign in with a nickname
// and an 8-digit PIN, record income and expenses, look at statistics, keep
// memos, and export or back up the data.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
