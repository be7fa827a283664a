// Package middleware contains the HTTP middleware shared by the API routes:
// identity resolution, request tracing and CORS.
package middleware
