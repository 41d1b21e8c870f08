// Package providers contains dependency injection providers for the Takibi server.
package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// serverVersion is reported in the instance record and mDNS TXT records.
	serverVersion = "0.1.0"
)
