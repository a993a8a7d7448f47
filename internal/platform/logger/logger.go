package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Services receive it by injection rather than
// importing a shared singleton.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
