// Package broker implements the multi-source Broker (spec §4.J):
// sequential loading of N sources with per-slot result isolation and a
// single final callback over the assembled Table slice.
package broker

import (
	"github.com/google/uuid"
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// LoadFunc loads one slot's Table. An error substitutes an
// empty (zero-field) Table in that slot's result rather than aborting the
// whole broker (spec §4.J: "an empty Table substitutes for a failed
// slot").
type LoadFunc func() (*table.Table, error)

// Slot is one registered source load and its outcome once realized.
type Slot struct {
	ID     string
	Load   LoadFunc
	Result *table.Table
	Err    error
	done   bool
}

// Broker holds an ordered list of slots. Realize walks them strictly
// sequentially — never concurrently (spec §5 "Ordering": "Across broker
// slots, loads are sequential") — and invokes callback exactly once, with
// one Table per slot in registration order.
type Broker struct {
	slots    []*Slot
	onNotify func(slotIndex int, slot *Slot)
}

// New registers loaders in order, assigning each slot a generated id
// (spec's domain stack gives the broker package google/uuid for this).
func New(loaders []LoadFunc) *Broker {
	slots := make([]*Slot, len(loaders))
	for i, l := range loaders {
		slots[i] = &Slot{ID: uuid.NewString(), Load: l}
	}
	return &Broker{slots: slots}
}

// OnNotify registers a callback invoked after each individual slot
// resolves, before the final aggregate callback (useful for progress
// reporting); it is optional.
func (b *Broker) OnNotify(fn func(slotIndex int, slot *Slot)) {
	b.onNotify = fn
}

// Realize loads every unresolved slot in order, then invokes callback
// exactly once with the resulting Table slice (spec §4.J, §5: "the
// callback is invoked exactly once").
func (b *Broker) Realize(s sink.Sink, callback func(tables []*table.Table)) {
	s = sink.OrNoop(s)
	for i, slot := range b.slots {
		if slot.done {
			continue
		}
		result, err := slot.Load()
		if err != nil {
			s.Warn("broker: slot load failed, substituting empty table", "slot", slot.ID, "error", err.Error())
			slot.Err = err
			slot.Result = table.NewEmpty(nil)
		} else {
			slot.Result = result
		}
		slot.done = true
		if b.onNotify != nil {
			b.onNotify(i, slot)
		}
	}

	out := make([]*table.Table, len(b.slots))
	for i, slot := range b.slots {
		out[i] = slot.Result
	}
	callback(out)
}
