package leave

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore backs every fake repository. WithinTransaction snapshots it and
// restores the snapshot when the callback fails.
type memStore struct {
	types        map[string]leave.LeaveType
	applications map[string]leave.LeaveApplication
	attachments  []leave.Attachment
	history      []leave.StatusChange
	balances     map[leave.BalanceKey]leave.LeaveBalance

	historyErr error
}

func newMemStore() *memStore {
	return &memStore{
		types:        map[string]leave.LeaveType{},
		applications: map[string]leave.LeaveApplication{},
		balances:     map[leave.BalanceKey]leave.LeaveBalance{},
	}
}

func (m *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range m.types {
		c.types[k] = v
	}
	for k, v := range m.applications {
		c.applications[k] = v
	}
	for k, v := range m.balances {
		c.balances[k] = v
	}
	c.attachments = append([]leave.Attachment(nil), m.attachments...)
	c.history = append([]leave.StatusChange(nil), m.history...)
	c.historyErr = m.historyErr
	return c
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := m.snapshot()
	if err := fn(ctx); err != nil {
		m.applications = saved.applications
		m.balances = saved.balances
		m.attachments = saved.attachments
		m.history = saved.history
		return err
	}
	return nil
}

type fakeTypeRepo struct{ s *memStore }

func (r fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := r.s.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrUnknownLeaveType
	}
	return t, nil
}

func (r fakeTypeRepo) GetByCodes(_ context.Context, codes []string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, t := range r.s.types {
		for _, c := range codes {
			if t.Code == c {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r fakeTypeRepo) List(_ context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, t := range r.s.types {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r fakeTypeRepo) Create(_ context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	for _, existing := range r.s.types {
		if existing.Code == t.Code {
			return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
		}
	}
	t.ID = uuid.NewString()
	r.s.types[t.ID] = t
	return t, nil
}

type fakeApplicationRepo struct{ s *memStore }

func (r fakeApplicationRepo) Create(_ context.Context, a leave.LeaveApplication) (leave.LeaveApplication, error) {
	a.ID = uuid.NewString()
	r.s.applications[a.ID] = a
	return a, nil
}

func (r fakeApplicationRepo) GetByIDForEmployee(_ context.Context, id, employeeID string) (leave.LeaveApplication, error) {
	a, ok := r.s.applications[id]
	if !ok || a.EmployeeID != employeeID {
		return leave.LeaveApplication{}, leave.ErrLeaveApplicationNotFound
	}
	return a, nil
}

func (r fakeApplicationRepo) HasOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, a := range r.s.applications {
		if a.EmployeeID != employeeID {
			continue
		}
		if a.Status != leave.StatusPending && a.Status != leave.StatusApproved {
			continue
		}
		if !a.StartDate.After(end) && !a.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeApplicationRepo) DeletePending(_ context.Context, id string) error {
	a, ok := r.s.applications[id]
	if !ok || a.Status != leave.StatusPending {
		return leave.ErrLeaveApplicationNotFound
	}
	delete(r.s.applications, id)
	var kept []leave.Attachment
	for _, a := range r.s.attachments {
		if a.ApplicationID != id {
			kept = append(kept, a)
		}
	}
	r.s.attachments = kept
	return nil
}

func (r fakeApplicationRepo) List(_ context.Context, q leave.ApplicationQuery) ([]leave.LeaveApplication, int64, error) {
	var out []leave.LeaveApplication
	for _, a := range r.s.applications {
		if a.EmployeeID != q.EmployeeID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		if q.LeaveTypeID != nil && a.LeaveTypeID != *q.LeaveTypeID {
			continue
		}
		if q.Year != nil && a.StartDate.Year() != *q.Year {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	total := int64(len(out))
	if q.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, total, nil
}

type fakeAttachmentRepo struct{ s *memStore }

func (r fakeAttachmentRepo) Create(_ context.Context, a leave.Attachment) (leave.Attachment, error) {
	a.ID = uuid.NewString()
	r.s.attachments = append(r.s.attachments, a)
	return a, nil
}

func (r fakeAttachmentRepo) ListByApplication(_ context.Context, applicationID string) ([]leave.Attachment, error) {
	var out []leave.Attachment
	for _, a := range r.s.attachments {
		if a.ApplicationID == applicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct{ s *memStore }

func (r fakeHistoryRepo) Record(_ context.Context, c leave.StatusChange) error {
	if r.s.historyErr != nil {
		return r.s.historyErr
	}
	c.ID = uuid.NewString()
	r.s.history = append(r.s.history, c)
	return nil
}

func (r fakeHistoryRepo) ListByApplication(_ context.Context, applicationID string) ([]leave.StatusChange, error) {
	var out []leave.StatusChange
	for _, c := range r.s.history {
		if c.ApplicationID == applicationID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct{ s *memStore }

func (r fakeBalanceRepo) Apply(_ context.Context, key leave.BalanceKey, counter leave.BalanceCounter, delta, allocated decimal.Decimal) (leave.LeaveBalance, error) {
	b, ok := r.s.balances[key]
	if !ok {
		b = leave.LeaveBalance{
			ID:          uuid.NewString(),
			EmployeeID:  key.EmployeeID,
			LeaveTypeID: key.LeaveTypeID,
			Year:        key.Year,
			Allocated:   allocated,
		}
	}
	switch counter {
	case leave.CounterPending:
		b.Pending = decimal.Max(b.Pending.Add(delta), decimal.Zero)
	case leave.CounterUsed:
		b.Used = decimal.Max(b.Used.Add(delta), decimal.Zero)
	default:
		return leave.LeaveBalance{}, fmt.Errorf("unknown counter %q", counter)
	}
	r.s.balances[key] = b
	return b, nil
}

func (r fakeBalanceRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for k, b := range r.s.balances {
		if k.EmployeeID == employeeID && k.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeFileService struct {
	err     error
	stored  []string
	deleted []string
}

func (f *fakeFileService) UploadLeaveAttachment(_ context.Context, employeeID string, r io.Reader, filename, contentType string) (file.StoredFile, error) {
	if f.err != nil {
		return file.StoredFile{}, f.err
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return file.StoredFile{}, err
	}
	key := "leave/" + employeeID + "/" + filename
	f.stored = append(f.stored, key)
	return file.StoredFile{
		Key:      key,
		FileName: filename,
		FileType: contentType,
		FileSize: n,
		FileURL:  "/uploads/" + key,
	}, nil
}

func (f *fakeFileService) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type countingRecorder struct {
	transitions map[string]int
	skipped     int
}

func (c *countingRecorder) LeaveTransition(status string) {
	if c.transitions == nil {
		c.transitions = map[string]int{}
	}
	c.transitions[status]++
}

func (c *countingRecorder) ReconciliationSkipped() { c.skipped++ }

var errStoreDown = errors.New("store down")
