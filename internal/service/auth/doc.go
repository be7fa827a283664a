// Package auth resolves the caller's identity from the Authorization header.
//
// The header must split on a single space into a scheme and a token; the
// scheme is ignored. By default the token itself is the identity
// (OpaqueValidator). In jwt mode the token must be an HS256 JWT signed with
// the configured secret and its subject claim is the identity.
package auth
