// Package cli is the interactive GameKeeper client.
//
// App wires the on-device store, the backend binding, the session holder and
// the catalog view-model, then runs a line-based REPL. The screen follows the
// session: a sign-in prompt while signed out, the games table while signed
// in. Changes pushed by the server re-render the table between commands.
package cli
