// Package client is the ForkVault gateway client.
//
// # Overview
//
// Client extends the gateway.Gateway contract with Ping and Close.
// GRPCClient implements it over a gRPC connection: it attaches the
// gateway API key to every call via an interceptor, sizes messages for
// full blobs, and maps gRPC status codes back to sentinel errors.
//
// # Error Handling
//
// NotFound and AlreadyExists come back as common.ErrorNotFound and
// common.ErrorAlreadyExists, ResourceExhausted as common.ErrFileTooLarge.
// Transport conditions are ErrUnavailable and ErrUnauthorized. Match
// with errors.Is.
package client
