// Package common contains shared constants and sentinel errors used across
// the poetrykeeper client and document-store server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultCollectionPath is the document-store collection holding poems.
const DefaultCollectionPath = "Poems"
