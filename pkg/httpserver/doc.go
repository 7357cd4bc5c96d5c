// Package httpserver runs the portal's HTTP listener with graceful,
// signal-aware shutdown.
package httpserver
