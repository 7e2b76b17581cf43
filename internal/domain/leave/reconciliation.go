package leave

// BalanceCounter names the running counter on a LeaveBalance that an
// application's duration is booked against.
type BalanceCounter string

const (
	CounterPending BalanceCounter = "pending"
	CounterUsed    BalanceCounter = "used"
)

func (c BalanceCounter) IsValid() bool {
	return c == CounterPending || c == CounterUsed
}

// ReconciliationTable maps leave_type_id to the counter its applications
// reserve on submit and release on cancel. Leave types absent from the
// table carry no balance.
type ReconciliationTable map[string]BalanceCounter

// NewReconciliationTable registers every leave type whose code is listed.
// Codes with no matching type are returned so the caller can report them.
func NewReconciliationTable(types []LeaveType, codes []string) (ReconciliationTable, []string) {
	byCode := make(map[string]LeaveType, len(types))
	for _, t := range types {
		byCode[t.Code] = t
	}

	table := make(ReconciliationTable, len(codes))
	var missing []string
	for _, code := range codes {
		t, ok := byCode[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		table[t.ID] = CounterPending
	}
	return table, missing
}

func (t ReconciliationTable) Lookup(leaveTypeID string) (BalanceCounter, bool) {
	c, ok := t[leaveTypeID]
	return c, ok
}
