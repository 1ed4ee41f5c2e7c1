// Package auth provides TokenProvider implementations for authenticating
// against the remote generation services.
package auth
