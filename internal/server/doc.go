// Package server exposes the HTTP API: question and answer endpoints, the
// vote endpoint, and the observability surface (health, metrics, version).
package server
