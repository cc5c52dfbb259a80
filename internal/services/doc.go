// Package services implements HTTP and WebSocket clients for the external
// services the rounds client depends on.
//
// # Contracts
//
//   - [AuthService] : login (password grant), token refresh, profile fetch
//   - [FriendService] : friend list, friend requests, send/accept/decline/block
//   - [SearchService] : free-text user search, whole-result-set replacement
//   - [CourseService] : course list/detail, imported course upload
//   - [HomeService] : recent matches, leaderboard, tournaments
//   - [Recognizer] : scorecard OCR through the EasyOCR proxy
//
// # Error classification
//
// Every client wraps failures with shared.Transient or shared.Terminal so the
// presentation layer can decide whether to show a retry affordance without
// inspecting transport details. Backend error messages are surfaced verbatim.
//
// # Authentication
//
// [AuthClient] owns the oauth2 token; the other clients borrow its
// [oauth2.TokenSource], which refreshes expired access tokens on demand.
// [RealtimeFeed] authenticates once at dial time with a bearer header.
package services
