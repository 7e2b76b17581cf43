package leave

import (
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
)

// reconciler guards the reconciliation table so leave types created after
// start-up with a reconciled code are picked up without a restart.
type reconciler struct {
	mu    sync.RWMutex
	table leave.ReconciliationTable
	codes map[string]struct{}
}

func newReconciler(table leave.ReconciliationTable, codes []string) *reconciler {
	r := &reconciler{
		table: make(leave.ReconciliationTable, len(table)),
		codes: make(map[string]struct{}, len(codes)),
	}
	for id, c := range table {
		r.table[id] = c
	}
	for _, code := range codes {
		r.codes[code] = struct{}{}
	}
	return r
}

func (r *reconciler) lookup(leaveTypeID string) (leave.BalanceCounter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Lookup(leaveTypeID)
}

func (r *reconciler) register(t leave.LeaveType) {
	if _, ok := r.codes[t.Code]; !ok {
		return
	}
	r.mu.Lock()
	r.table[t.ID] = leave.CounterPending
	r.mu.Unlock()
}
