// Package common contains shared constants and sentinel errors used across
// the admin console components.
package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session_token"
