package budget

import "github.com/shopspring/decimal"

// CostID identifies a cost entry for the lifetime of a ledger.
type CostID int

// CostEntry is one recurring monthly cost.
type CostEntry struct {
	ID          CostID `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Field names an editable column of a CostEntry.
type Field int

const (
	FieldName Field = iota
	FieldAmount
	FieldDescription
)

// Ledger is an ordered list of cost entries that never drops below one entry.
// It also tracks the validation result of each entry's amount.
type Ledger struct {
	entries []CostEntry
	errs    map[CostID]error
}

// NewLedger returns a ledger holding a single empty entry with id 1.
func NewLedger() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// LedgerFrom builds a ledger from existing entries, validating every amount
// that is non-empty. Duplicate or non-positive ids are reassigned. An empty
// input yields the same state as NewLedger.
func LedgerFrom(entries []CostEntry) *Ledger {
	if len(entries) == 0 {
		return NewLedger()
	}
	l := &Ledger{errs: make(map[CostID]error)}
	seen := make(map[CostID]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup || e.ID <= 0 {
			e.ID = l.nextID(entries)
		}
		seen[e.ID] = struct{}{}
		l.entries = append(l.entries, e)
		if e.Amount != "" {
			l.errs[e.ID] = ValidateAmount(e.Amount)
		}
	}
	return l
}

// nextID returns max(id)+1 over both the ledger and pending entries.
func (l *Ledger) nextID(pending []CostEntry) CostID {
	maxID := CostID(0)
	for _, e := range l.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	for _, e := range pending {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// Reset drops every entry and validation result and starts over with one empty entry.
func (l *Ledger) Reset() {
	l.entries = []CostEntry{{ID: 1}}
	l.errs = make(map[CostID]error)
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in order.
func (l *Ledger) Entries() []CostEntry {
	out := make([]CostEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns the entry with the given id.
func (l *Ledger) Entry(id CostID) (CostEntry, bool) {
	if i := l.index(id); i >= 0 {
		return l.entries[i], true
	}
	return CostEntry{}, false
}

// Err returns the validation error recorded for the entry's amount, if any.
func (l *Ledger) Err(id CostID) error {
	return l.errs[id]
}

// Errors returns a copy of the non-nil validation errors keyed by entry id.
func (l *Ledger) Errors() map[CostID]error {
	out := make(map[CostID]error, len(l.errs))
	for id, err := range l.errs {
		if err != nil {
			out[id] = err
		}
	}
	return out
}

// Add appends an empty entry and returns its id.
func (l *Ledger) Add() CostID {
	id := l.nextID(nil)
	l.entries = append(l.entries, CostEntry{ID: id})
	return id
}

// Update sets one field of the entry with the given id. Setting the amount
// revalidates it. It returns false when no such entry exists.
func (l *Ledger) Update(id CostID, field Field, value string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	switch field {
	case FieldName:
		l.entries[i].Name = value
	case FieldAmount:
		l.entries[i].Amount = value
		l.errs[id] = ValidateAmount(value)
	case FieldDescription:
		l.entries[i].Description = value
	default:
		return false
	}
	return true
}

// Remove deletes the entry and its validation state. The last remaining
// entry cannot be removed.
func (l *Ledger) Remove(id CostID) bool {
	if len(l.entries) <= 1 {
		return false
	}
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.errs, id)
	return true
}

// Valid returns entries whose amount is non-empty and passed validation.
func (l *Ledger) Valid() []CostEntry {
	var out []CostEntry
	for _, e := range l.entries {
		if e.Amount == "" || l.errs[e.ID] != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Total sums the amounts of all valid entries.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.Valid() {
		d, err := ParseAmount(e.Amount)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total
}

func (l *Ledger) index(id CostID) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
