package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetEffective implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetEffective(ctx context.Context, department *string) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, department, work_start_time, work_end_time, grace_period_minutes,
			half_day_hours, full_day_hours, geo_fencing_enabled, office_location,
			allowed_radius_meters, created_at, updated_at
		FROM attendance_settings
		WHERE department IS NULL OR department = $1::text
		ORDER BY department NULLS LAST
		LIMIT 1
	`

	var s settings.AttendanceSettings
	err := q.QueryRow(ctx, query, department).Scan(
		&s.ID,
		&s.Department,
		&s.WorkStartTime,
		&s.WorkEndTime,
		&s.GracePeriodMinutes,
		&s.HalfDayHours,
		&s.FullDayHours,
		&s.GeoFencingEnabled,
		&s.OfficeLocation,
		&s.AllowedRadiusMeters,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AttendanceSettings{}, err
	}
	return s, nil
}
