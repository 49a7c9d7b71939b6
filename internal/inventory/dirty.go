package inventory

import (
	"fmt"
	"strconv"
)

// DirtySet is the set of row ids (stringified) with local edits the backend
// has not confirmed. Snapshot order is insertion order. Not safe for
// concurrent use; Controller guards it.
type DirtySet struct {
	order []string
	idx   map[string]struct{}
}

func NewDirtySet() *DirtySet {
	return &DirtySet{idx: map[string]struct{}{}}
}

func dirtyKey(id int64) string { return strconv.FormatInt(id, 10) }

func (d *DirtySet) Add(id int64) {
	k := dirtyKey(id)
	if _, ok := d.idx[k]; ok {
		return
	}
	d.idx[k] = struct{}{}
	d.order = append(d.order, k)
}

func (d *DirtySet) Remove(id int64) {
	k := dirtyKey(id)
	if _, ok := d.idx[k]; !ok {
		return
	}
	delete(d.idx, k)
	for i, v := range d.order {
		if v == k {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *DirtySet) Has(id int64) bool {
	_, ok := d.idx[dirtyKey(id)]
	return ok
}

func (d *DirtySet) Len() int { return len(d.order) }

// Snapshot returns the ids in insertion order.
func (d *DirtySet) Snapshot() []string {
	return append([]string(nil), d.order...)
}

func (d *DirtySet) Clear() {
	d.order = nil
	d.idx = map[string]struct{}{}
}

// DirtyLabel is the counter text shown for n dirty rows (blank at zero).
func DirtyLabel(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("● 변경된 행: %d개", n)
}
