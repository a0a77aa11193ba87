// Package docstore describes the remote document store wire protocol.
//
// The store is a two-level tree: a path is either a collection ("Poems") or
// a child of one ("Poems/<key>"). Values are arbitrary JSON-like documents
// carried in google.protobuf.Struct envelopes, so no generated code is
// needed on either side. The service is registered under ServiceName with
// the unary methods Get, Set, Push and Remove.
package docstore
