// Package cli implements the dwitter command-line client on top of cobra.
//
// The session token returned by signup and login is cached in
// $XDG_CONFIG_HOME/dwitter/token (or the platform equivalent) with
// owner-only permissions and sent on every later command.
package cli
