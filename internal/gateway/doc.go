// ABOUTME: Package documentation for gateway
// ABOUTME: Describes the HTTP surface and its error mapping

// Package gateway is the HTTP front of the service. It exposes an
// OpenAI-style chat completion endpoint, a models listing, and CRUD
// for in-memory sessions, all backed by one configured agent through
// the client facade.
//
// Routes:
//
//	POST   /v1/chat/completions      stateless completion
//	GET    /v1/models                list the advertised model
//	GET    /v1/models/{id}           echo model details for any id
//	POST   /v1/sessions              create a session
//	GET    /v1/sessions              list sessions
//	GET    /v1/sessions/{id}         fetch a session
//	DELETE /v1/sessions/{id}         delete a session
//	POST   /v1/sessions/{id}/messages  send a message, get the reply
//	GET    /v1/sessions/{id}/messages  message history
//	GET    /health                   liveness
//
// Errors use a nested {"error": {...}} envelope. Unknown sessions map
// to 404, agent timeouts to 504, and all other agent failures to 500
// with the failure category in the error code.
package gateway
