// Package middleware provides HTTP middleware for the autodelete service.
//
// It includes:
//   - Request IDs taken from X-Request-ID or generated as UUIDs
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labelled by route template
package middleware
