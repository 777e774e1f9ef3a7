// Package server provides the local preview HTTP surface used by serve: the
// generated output tree with caching disabled, a Prometheus /metrics endpoint,
// and a websocket at /__livereload that tells open pages to reload after each
// successful rebuild.
package server
