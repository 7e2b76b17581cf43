package settings

import "context"

type SettingsRepository interface {
	// GetEffective returns the department's settings, falling back to the
	// company-wide row. ErrSettingsNotFound when neither exists.
	GetEffective(ctx context.Context, department *string) (AttendanceSettings, error)
}
