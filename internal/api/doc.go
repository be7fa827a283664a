// Package api handles incoming HTTP requests, request validation and
// response formatting. It translates HTTP concerns into TaskService calls
// and maps service errors onto status codes and safe client messages.
package api
