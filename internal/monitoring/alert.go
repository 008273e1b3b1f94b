package monitoring

import (
	"github.com/rs/zerolog/log"
)

// Alert sends a mock alert (logs for now)
func Alert(message string, labels map[string]string) {
	log.Error().
		Str("alert", message).
		Fields(labels).
		Msg("ALERT: Onboarding issue detected")
}
