//go:build windows

package main

import "os"

// shutdownSignals lists the signals that cancel a running simulation.
// On Windows only os.Interrupt is supported.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
