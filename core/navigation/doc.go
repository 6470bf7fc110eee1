// Package navigation maps URL-like paths to the screens of the THK portal.
//
// It is made of four layers, leaves first:
//
//   - ViewState: the closed set of screens a session can be on.
//   - Mapper: the static, bidirectional path <-> view table.
//   - Navigator: the per-session current view, changed only through Push.
//   - Dispatcher: picks the screen to render for a (view, role) pair.
//
// Navigation and authorization are independent: a User may Push "/dashboard"
// and the Navigator will move there, but the Dispatcher answers with the
// access-denied screen. Nothing redirects the Navigator on a role mismatch.
package navigation
