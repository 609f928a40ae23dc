package stage

import (
	"talkclip/internal/services"
)

// RequirePath fails with ErrValidation when an upstream stage left value empty.
func RequirePath(stageName, field, value string) error {
	if value == "" {
		return services.Wrap(services.ErrValidation, stageName, "prepare",
			field+" not set; earlier stage did not run", nil)
	}
	return nil
}
