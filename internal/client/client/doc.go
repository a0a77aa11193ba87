// Package client is the CLI's transport to the remote document store. It
// wraps the gRPC stub, attaches a freshly minted access token to every call,
// applies the per-call timeout and maps gRPC statuses to package errors.
package client
