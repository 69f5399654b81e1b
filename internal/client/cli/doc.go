// Package cli provides the interactive satchel command-line client.
//
// It wires configuration, local storage, the relay fan-out layer and the
// business services into an interactive REPL. Typical flow: log in with a
// local key or a remote signer URL, then publish records, manage the cart
// and upload media.
//
// Key features:
//   - Login with an nsec/hex key (read without echo) or a bunker:// URL
//   - Publish text records to all configured relays with live progress
//   - Cart: view, add, remove, sync against the relay network
//   - Upload files to blob servers with integrity verification
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
