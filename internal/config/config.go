package config

import "io/fs"

const (
	// DefaultPort is the port the file server binds when none is given.
	DefaultPort = "8000"

	// DefaultHost binds the file server on all interfaces.
	DefaultHost = ""

	// DefaultServeLogLevel is the log level for the file server.
	DefaultServeLogLevel = "info"

	// DefaultConvertLogLevel keeps the converter quiet unless something goes wrong.
	DefaultConvertLogLevel = "warn"

	// DefaultFileMode is used when the converter creates a new output file.
	DefaultFileMode fs.FileMode = 0o644
)

// Environment variables read by the command-line flags. They carry the
// JOURNAL_ prefix so generic names like PORT in a shell do not leak in.
const (
	EnvPort     = "JOURNAL_PORT"
	EnvRoot     = "JOURNAL_ROOT"
	EnvLogLevel = "JOURNAL_LOG_LEVEL"
)
