// Package common contains shared constants and sentinel errors used across
// taskkeeper components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the conventional prefix for tokens in the Authorization
// header. See auth.ExtractToken for how loosely it is interpreted.
const BearerScheme = "Bearer"
