package geokdnn

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// init configures the package's global zerolog logger from the
// GEOKDNN_LOG environment variable, the same env-gated pattern
// patrikhermansson-hann/core/log_config.go uses for its own package.
func init() {
	level := strings.TrimSpace(strings.ToLower(os.Getenv("GEOKDNN_LOG")))
	switch level {
	case "0", "off", "false":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "debug", "full", "all":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
