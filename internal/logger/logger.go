package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Production JSON output by default,
// human-readable development output when DEBUG=true.
func New() (*zap.Logger, error) {
	if os.Getenv("DEBUG") == "true" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
