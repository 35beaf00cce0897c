// Package http implements the operator REST API of the sync engine.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, response compression and the optional bearer-token guard
// are handled here before requests are delegated to the service layer.
package http
