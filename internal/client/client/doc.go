// Package client contains the vmailctl side of the vmail API.
//
// GRPCClient manages one connection to the server, remembers the access
// token returned by Login and attaches it to later calls through a unary
// interceptor. gRPC status codes are mapped to the sentinel errors in
// errors.go so callers can match them with errors.Is.
package client
