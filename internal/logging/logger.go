package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide JSON logger. Once the database is up,
// main swaps in a MultiHandler so errors also land in system_logs.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
