// Package server provides the local HTTP surface for the rounds CLI: routing,
// middleware, and the SSO callback listener.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [MuxRouter] implementation uses [github.com/gorilla/mux] internally with method filtering.
//
// # SSO Callback Handler
//
// [CallbackHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens
// through a [CodeExchanger], and delivers the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `rounds auth sso`, a temporary HTTP server starts on the
// configured localhost port, the system browser opens the authorization URL,
// and the server shuts down after the callback delivers a token.
package server
