// Package api defines the messages exchanged over the splitwallet.v1 RPC
// surface. Messages are encoded as JSON; field names are lowerCamelCase.
// Timestamps are Unix seconds and amounts are whole currency units.
//
// Validation tags are checked by the service layer before a request is
// acted on.
package api
