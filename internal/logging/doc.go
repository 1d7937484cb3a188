// Package logging provides structured logging for the berdump tool.
//
// # Creating a Logger
//
//	logger := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	    Output: os.Stderr,
//	})
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Structured Logging
//
// Add key-value pairs to log entries:
//
//	logger.Debug("decoded value",
//	    "offset", 0,
//	    "consumed", 38,
//	    "tag", "[APPLICATION 0] constructed",
//	)
//
// Text format (human-readable):
//
//	2026-02-18T10:30:00Z [debug] decoded value consumed=38 offset=0 tag=[APPLICATION 0] constructed
//
// JSON format (machine-parseable):
//
//	{"consumed":38,"level":"debug","msg":"decoded value","offset":0,"tag":"[APPLICATION 0] constructed","ts":"2026-02-18T10:30:00Z"}
//
// # Contextual Fields
//
// WithFields returns a logger whose entries all carry the given fields:
//
//	cmdLogger := logger.WithFields("command", "decode")
package logging
