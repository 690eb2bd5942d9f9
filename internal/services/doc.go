// Package services defines the [Service] interface for the movie catalog and implements it for the CinéIA HTTP API.
//
// # Service Interface
//
// All catalog and account operations go through a common abstraction so
// commands, the TUI, and the library engine can run against a test double.
//
// # CinéIA Implementation
//
// [CineService] talks JSON over HTTP to the Flask catalog server on port 5000.
//
// Browse and search endpoints are open. Mutations require a bearer token,
// attached per request through [oauth2.Transport] with the session's static
// token source. Requests that require authentication fail with
// [shared.ErrLoginRequired] before any network traffic when the session is
// anonymous.
//
// # Raw API Access
//
// [APIService] exposes Get/Post/Delete passthroughs for the `cinex api`
// command. It attaches the credential when a session is active but performs
// no status mapping or response decoding.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrLoginRequired] : the session is anonymous
//   - [shared.ErrAuthFailed] : the server rejected the credential (401/403)
//   - [shared.ErrDuplicateEntry] : the movie is already in the list (409)
//   - [shared.ErrMovieNotFound], [shared.ErrListNotFound] : unknown ids (404)
//   - [shared.ErrAPIRequest] : any other error status
//   - [shared.ErrServiceUnavailable] : the server could not be reached
package services
