// Package server implements the listening side of the framed echo
// protocol: a single accept loop that spawns one isolated goroutine per
// connection. Handlers never share mutable state, so no synchronization
// is needed; the only process-wide resource is the listening socket,
// which only the accept loop touches.
package server
