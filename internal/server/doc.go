// Package server runs the operator HTTP API and the gRPC health service.
//
// Both transports are started together and stopped together once the
// context passed to RunServer is cancelled.
package server
