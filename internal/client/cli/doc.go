// Package cli provides the interactive command-line client of the
// surveillance backend.
//
// It wires the session client and the application services into a REPL.
// A session saved by a previous run is picked up on start, so the user is
// only asked to log in when no valid credential pair is stored.
//
// Key features:
//   - Login / Logout / Status / Profile
//   - Sign-up requests and their review by administrators
//   - ASHA reports, alerts, risk scores and dashboard statistics
//   - Raw authenticated GET and DELETE of any API path
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
