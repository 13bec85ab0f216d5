// Package common contains shared constants and sentinel errors used across
// gophledger components.
package common

// APIKeyHeaderName is the gRPC metadata key that carries the static backend
// API key on every outbound request.
const APIKeyHeaderName = "x-api-key"
