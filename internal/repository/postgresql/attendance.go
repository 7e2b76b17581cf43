package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
	a.check_in_location, a.check_out_location, a.check_in_device, a.check_out_device,
	a.status, a.working_hours, a.created_at, a.updated_at,
	e.id, e.employee_code, e.name, e.department`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var (
		rec                              attendance.AttendanceRecord
		empID, empCode, empName, empDept *string
	)
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckInTime,
		&rec.CheckOutTime,
		&rec.CheckInLocation,
		&rec.CheckOutLocation,
		&rec.CheckInDevice,
		&rec.CheckOutDevice,
		&rec.Status,
		&rec.WorkingHours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&empID,
		&empCode,
		&empName,
		&empDept,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	if empID != nil {
		rec.Employee = &employee.Employee{ID: *empID, Department: empDept}
		if empCode != nil {
			rec.Employee.EmployeeCode = *empCode
		}
		if empName != nil {
			rec.Employee.Name = *empName
		}
	}
	return rec, nil
}

// buildAttendanceWhere turns a Query into a WHERE clause and its arguments.
func buildAttendanceWhere(q attendance.Query) (string, []any) {
	where := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	if q.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *q.EmployeeID)
		argIdx++
	}
	if q.Start != nil {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *q.Start)
		argIdx++
	}
	if q.End != nil {
		where += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *q.End)
		argIdx++
	}
	if q.Status != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*q.Status))
	}
	return where, args
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.CheckInDevice == nil {
		rec.CheckInDevice = attendance.DeviceInfo{}
	}

	query := `
		INSERT INTO attendance_records (
			employee_id, date, check_in_time, check_in_location, check_out_location,
			check_in_device, status, working_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Date,
		rec.CheckInTime,
		rec.CheckInLocation,
		rec.CheckOutLocation,
		rec.CheckInDevice,
		string(rec.Status),
		rec.WorkingHours,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if constraintViolation(err, pgUniqueViolation, "uq_attendance_employee_date") {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`
	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository. The row is only
// written while check_out_time is still empty.
func (r *attendanceRepositoryImpl) UpdateCheckOut(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $2,
			check_out_location = $3,
			check_out_device = $4,
			status = $5,
			working_hours = $6,
			updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckOutTime,
		rec.CheckOutLocation,
		rec.CheckOutDevice,
		string(rec.Status),
		rec.WorkingHours,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

// Find implements attendance.AttendanceRepository. Results are ordered by
// date, newest first.
func (r *attendanceRepositoryImpl) Find(ctx context.Context, q attendance.Query) ([]attendance.AttendanceRecord, error) {
	return findAttendance(ctx, GetQuerier(ctx, r.db), q)
}

// Count implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Count(ctx context.Context, q attendance.Query) (int64, error) {
	where, args := buildAttendanceWhere(q)

	var total int64
	err := GetQuerier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records a `+where, args...).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// MarkAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, check_in_location, status, working_hours)
		SELECT e.id, $1::date, $2::jsonb, $3::text, 0
		FROM employees e
		WHERE NOT EXISTS (
			SELECT 1 FROM leave_applications la
			WHERE la.employee_id = e.id
				AND la.status = 'approved'
				AND $1::date BETWEEN la.start_date AND la.end_date
		)
		ON CONFLICT ON CONSTRAINT uq_attendance_employee_date DO NOTHING
	`
	tag, err := q.Exec(ctx, query, date, attendance.UnsetPoint(), string(attendance.StatusAbsent))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func findAttendance(ctx context.Context, db database.Querier, q attendance.Query) ([]attendance.AttendanceRecord, error) {
	where, args := buildAttendanceWhere(q)

	query := fmt.Sprintf(`SELECT %s
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date DESC, a.check_in_time DESC NULLS LAST, a.id`, attendanceColumns, where)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
