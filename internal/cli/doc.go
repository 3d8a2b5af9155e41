// Package cli handles command-line argument parsing and validation for the
// cellconf binary, translating flags into an app.Config.
package cli
