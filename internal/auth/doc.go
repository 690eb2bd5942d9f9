// Package auth implements the client-side session lifecycle: credential
// decoding, persistence, and the process-wide identity state.
//
// # Token Codec
//
// [Decode] parses the payload segment of the compact JWT the API issues on
// login. Only the payload is read; signature verification stays with the
// server. [Claims.Expired] compares the exp claim (seconds) against wall
// clock time in milliseconds, and [DeriveIdentity] projects claims into the
// display-ready [Identity] with the username taken from the email local-part.
//
// # Credential Store
//
// [CredentialStore] persists the credential as a single cookie record
// (name "token", 12 hour expiry, Secure, SameSite=Strict) under the cinex
// state directory with 0600 permissions.
//
// # Session
//
// [Session] is a two-state machine (Anonymous, Authenticated) with three
// transitions: Login, Logout, and Resume. Resume validates before
// transitioning, so the session never reports Authenticated while holding a
// nil or expired identity. Subscribers receive a consistent [Snapshot] on
// every transition, and [Session.Token] refuses identity-dependent calls
// with [shared.ErrLoginRequired] before any network traffic happens.
package auth
