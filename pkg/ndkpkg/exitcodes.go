// Package ndkpkg provides public constants for external tools integrating
// with ndkpkg.
package ndkpkg

// Exit codes returned by the ndkpkg CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (download, layout, permissions).
	ExitFailure = 1

	// ExitConfigError indicates an invalid or unsupported configuration.
	ExitConfigError = 2

	// ExitEnvError indicates a missing host dependency such as python.
	ExitEnvError = 3

	// ExitIntegrityError indicates an archive whose checksum is wrong or unknown.
	ExitIntegrityError = 4
)
