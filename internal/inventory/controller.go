// Package inventory is the inventory table controller: it owns the live row
// values, the dirty set and the saving flag, and drives the backend, a View
// and a Notifier. It has no rendering dependency.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fishinv/internal/api"
	"fishinv/internal/model"
)

const (
	StatusLoading    = "불러오는 중…"
	StatusLoadFailed = "로드 실패"

	NoChangesDetail = "변경된 항목이 없습니다."

	ctxLoad     = "목록 조회"
	ctxAdd      = "행 추가"
	ctxBulk     = "일괄 저장"
	ctxAutosave = "자동저장"
)

func statusCount(n int) string { return fmt.Sprintf("총 %d건", n) }

func ctxSaveRow(id int64, fromAutosave bool) string {
	if fromAutosave {
		return fmt.Sprintf("자동저장(개별, ID:%d)", id)
	}
	return fmt.Sprintf("개별 저장(ID:%d)", id)
}

func ctxDelete(id int64) string { return fmt.Sprintf("행 삭제(ID:%d)", id) }

func ctxSaveAll(fromAutosave bool) string {
	if fromAutosave {
		return ctxAutosave
	}
	return ctxBulk
}

type Field string

const (
	FieldFish      Field = "fish"
	FieldSize      Field = "size"
	FieldQty       Field = "qty"
	FieldUnitPrice Field = "unit_price"
)

// Fields in table column order.
var Fields = []Field{FieldFish, FieldSize, FieldQty, FieldUnitPrice}

// RowView is what a View renders for one row. Qty and UnitPrice are the live
// input text; Amount is formatted.
type RowView struct {
	ID        int64
	Fish      string
	Size      string
	Qty       string
	UnitPrice string
	Amount    string
	Dirty     bool
}

func (r RowView) Value(f Field) string {
	switch f {
	case FieldFish:
		return r.Fish
	case FieldSize:
		return r.Size
	case FieldQty:
		return r.Qty
	case FieldUnitPrice:
		return r.UnitPrice
	}
	return ""
}

// AddInput is the raw add-form input.
type AddInput struct {
	Fish      string
	Size      string
	Qty       string
	UnitPrice string
}

type View interface {
	RenderRows(rows []RowView)
	RenderPreview(id int64, amount string)
	RenderStatus(status string)
	RenderDirtyCount(label string)
	ClearAddForm()
}

type Notifier interface {
	NotifyResult(ok bool, context, detail string)
}

// Backend is the REST surface (api.Client).
type Backend interface {
	ListInventory(ctx context.Context) ([]model.InventoryRow, error)
	CreateRow(ctx context.Context, row model.NewRow) (json.RawMessage, error)
	UpdateRow(ctx context.Context, row model.RowPayload) error
	DeleteRow(ctx context.Context, id int64) error
	BulkUpdate(ctx context.Context, items []model.RowPayload) error
}

type Options struct {
	Backend  Backend
	View     View
	Notifier Notifier
	// Policy defaults to model.PermissivePolicy.
	Policy model.NumberPolicy
}

type row struct {
	id        int64
	fish      string
	size      string
	qty       string
	unitPrice string
	amount    float64
}

func (r row) view(dirty bool) RowView {
	return RowView{
		ID:        r.id,
		Fish:      r.fish,
		Size:      r.size,
		Qty:       r.qty,
		UnitPrice: r.unitPrice,
		Amount:    model.FormatMoney(r.amount),
		Dirty:     dirty,
	}
}

type Controller struct {
	backend  Backend
	view     View
	notifier Notifier
	policy   model.NumberPolicy

	mu    sync.Mutex
	rows  []row
	dirty *DirtySet

	// gen counts edits per row id; a save clears an id only if no edit
	// landed after its payload was built.
	gen    map[int64]uint64
	saving bool
	loaded bool
	status string
}

func NewController(opts Options) *Controller {
	p := opts.Policy
	if p == nil {
		p = model.PermissivePolicy{}
	}
	v := opts.View
	if v == nil {
		v = nopView{}
	}
	n := opts.Notifier
	if n == nil {
		n = nopNotifier{}
	}
	return &Controller{
		backend:  opts.Backend,
		view:     v,
		notifier: n,
		policy:   p,
		dirty:    NewDirtySet(),
		gen:      map[int64]uint64{},
	}
}

// Reset drops all rows, dirty marks and the saving flag.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.rows = nil
	c.dirty.Clear()
	c.gen = map[int64]uint64{}
	c.saving = false
	c.loaded = false
	c.status = ""
	c.mu.Unlock()
	c.view.RenderRows(nil)
	c.view.RenderDirtyCount("")
	c.view.RenderStatus("")
}

func (c *Controller) Policy() model.NumberPolicy { return c.policy }

// Load fetches the full collection and rebuilds the rows. Dirty membership is
// kept across the reload by id, and dirty rows keep their local inputs.
func (c *Controller) Load(ctx context.Context) error {
	c.setStatus(StatusLoading)

	items, err := c.backend.ListInventory(ctx)
	if err != nil {
		c.setStatus(StatusLoadFailed)
		c.notifier.NotifyResult(false, ctxLoad, api.Detail(err))
		return err
	}

	c.mu.Lock()
	local := make(map[int64]row, c.dirty.Len())
	for _, r := range c.rows {
		if c.dirty.Has(r.id) {
			local[r.id] = r
		}
	}
	c.rows = make([]row, 0, len(items))
	views := make([]RowView, 0, len(items))
	for _, it := range items {
		if r, ok := local[it.ID]; ok {
			c.rows = append(c.rows, r)
			views = append(views, r.view(true))
			continue
		}
		r := row{
			id:        it.ID,
			fish:      it.Fish,
			size:      it.Size,
			qty:       model.FormatInput(it.Qty),
			unitPrice: model.FormatInput(it.UnitPrice),
			amount:    it.Amount,
		}
		c.rows = append(c.rows, r)
		views = append(views, r.view(c.dirty.Has(r.id)))
	}
	c.loaded = true
	c.mu.Unlock()

	c.view.RenderRows(views)
	c.setStatus(statusCount(len(items)))
	return nil
}

// AddRow posts a new row. The add form is cleared only on success.
func (c *Controller) AddRow(ctx context.Context, in AddInput) bool {
	qty, err := c.policy.Coerce(string(FieldQty), in.Qty)
	if err != nil {
		c.notifier.NotifyResult(false, ctxAdd, err.Error())
		return false
	}
	unit, err := c.policy.Coerce(string(FieldUnitPrice), in.UnitPrice)
	if err != nil {
		c.notifier.NotifyResult(false, ctxAdd, err.Error())
		return false
	}

	nr := model.NewRow{
		Fish:      strings.TrimSpace(in.Fish),
		Size:      strings.TrimSpace(in.Size),
		Qty:       qty,
		UnitPrice: unit,
	}
	if _, err := c.backend.CreateRow(ctx, nr); err != nil {
		c.notifier.NotifyResult(false, ctxAdd, api.Detail(err))
		return false
	}
	c.view.ClearAddForm()
	c.notifier.NotifyResult(true, ctxAdd, "")
	_ = c.Load(ctx)
	return true
}

// Edit applies one input change: the row is marked dirty and its amount
// preview is recomputed from the current inputs. Unknown ids are ignored.
func (c *Controller) Edit(id int64, field Field, value string) bool {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	r := &c.rows[i]
	switch field {
	case FieldFish:
		r.fish = value
	case FieldSize:
		r.size = value
	case FieldQty:
		r.qty = value
	case FieldUnitPrice:
		r.unitPrice = value
	default:
		c.mu.Unlock()
		return false
	}
	r.amount = model.Preview(model.Number(r.qty), model.Number(r.unitPrice))
	amount := model.FormatMoney(r.amount)
	c.gen[id]++
	c.mu.Unlock()

	c.SetDirty(id, true)
	c.view.RenderPreview(id, amount)
	return true
}

// SetDirty is the only way dirty membership changes.
func (c *Controller) SetDirty(id int64, dirty bool) {
	c.mu.Lock()
	if dirty {
		c.dirty.Add(id)
	} else {
		c.dirty.Remove(id)
	}
	n := c.dirty.Len()
	c.mu.Unlock()
	c.view.RenderDirtyCount(DirtyLabel(n))
}

// markSaved clears the ids whose edit generation still matches the one the
// save was built from. Rows edited while the request was in flight stay dirty.
func (c *Controller) markSaved(saved map[int64]uint64) {
	c.mu.Lock()
	for id, g := range saved {
		if c.gen[id] == g {
			c.dirty.Remove(id)
			delete(c.gen, id)
		}
	}
	n := c.dirty.Len()
	c.mu.Unlock()
	c.view.RenderDirtyCount(DirtyLabel(n))
}

// SaveRow persists one row's current inputs. It returns false without doing
// anything when another save is in flight.
func (c *Controller) SaveRow(ctx context.Context, id int64, fromAutosave bool) bool {
	if !c.beginSave() {
		return false
	}
	defer c.endSave()

	label := ctxSaveRow(id, fromAutosave)
	c.mu.Lock()
	i := c.indexLocked(id)
	var r row
	if i >= 0 {
		r = c.rows[i]
	}
	g := c.gen[id]
	c.mu.Unlock()
	if i < 0 {
		c.notifier.NotifyResult(false, label, fmt.Sprintf("ID %d 행을 찾을 수 없습니다.", id))
		return false
	}

	payload, err := c.payload(r)
	if err != nil {
		c.notifier.NotifyResult(false, label, err.Error())
		return false
	}
	if err := c.backend.UpdateRow(ctx, payload); err != nil {
		c.notifier.NotifyResult(false, label, api.Detail(err))
		return false
	}
	c.markSaved(map[int64]uint64{id: g})
	c.notifier.NotifyResult(true, label, "")
	_ = c.Load(ctx)
	return true
}

// DeleteRow deletes a row. Confirmation is the caller's job.
func (c *Controller) DeleteRow(ctx context.Context, id int64) bool {
	label := ctxDelete(id)
	if err := c.backend.DeleteRow(ctx, id); err != nil {
		c.notifier.NotifyResult(false, label, api.Detail(err))
		return false
	}
	c.mu.Lock()
	delete(c.gen, id)
	c.mu.Unlock()
	c.SetDirty(id, false)
	c.notifier.NotifyResult(true, label, "")
	_ = c.Load(ctx)
	return true
}

// SaveAllDirty sends every dirty row in one bulk request. It returns false
// without doing anything when another save is in flight.
func (c *Controller) SaveAllDirty(ctx context.Context, fromAutosave bool) bool {
	if !c.beginSave() {
		return false
	}
	defer c.endSave()
	return c.saveAll(ctx, fromAutosave)
}

// AutosaveTick runs an autosave-tagged bulk save unless a save is in flight
// or nothing is dirty; skipped ticks are silent.
func (c *Controller) AutosaveTick(ctx context.Context) bool {
	c.mu.Lock()
	if c.saving || c.dirty.Len() == 0 {
		c.mu.Unlock()
		return false
	}
	c.saving = true
	c.mu.Unlock()
	defer c.endSave()
	return c.saveAll(ctx, true)
}

func (c *Controller) saveAll(ctx context.Context, fromAutosave bool) bool {
	label := ctxSaveAll(fromAutosave)

	c.mu.Lock()
	ids := c.dirty.Snapshot()
	rows := make([]row, 0, len(ids))
	saved := make(map[int64]uint64, len(ids))
	for _, k := range ids {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		saved[id] = c.gen[id]
		if i := c.indexLocked(id); i >= 0 {
			rows = append(rows, c.rows[i])
		}
	}
	c.mu.Unlock()

	if len(rows) == 0 {
		c.notifier.NotifyResult(true, label, NoChangesDetail)
		return true
	}

	items := make([]model.RowPayload, 0, len(rows))
	for _, r := range rows {
		p, err := c.payload(r)
		if err != nil {
			c.notifier.NotifyResult(false, label, err.Error())
			return false
		}
		items = append(items, p)
	}

	if err := c.backend.BulkUpdate(ctx, items); err != nil {
		c.notifier.NotifyResult(false, label, api.Detail(err))
		return false
	}
	c.markSaved(saved)
	c.notifier.NotifyResult(true, label, fmt.Sprintf("%d개 항목 저장 완료", len(items)))
	_ = c.Load(ctx)
	return true
}

func (c *Controller) payload(r row) (model.RowPayload, error) {
	qty, err := c.policy.Coerce(string(FieldQty), r.qty)
	if err != nil {
		return model.RowPayload{}, err
	}
	unit, err := c.policy.Coerce(string(FieldUnitPrice), r.unitPrice)
	if err != nil {
		return model.RowPayload{}, err
	}
	return model.RowPayload{ID: r.id, Fish: r.fish, Size: r.size, Qty: qty, UnitPrice: unit}, nil
}

func (c *Controller) beginSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return false
	}
	c.saving = true
	return true
}

func (c *Controller) endSave() {
	c.mu.Lock()
	c.saving = false
	c.mu.Unlock()
}

// Saving reports whether a save-class operation is in flight.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

func (c *Controller) HasUnsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty.Len() > 0
}

func (c *Controller) IsDirty(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty.Has(id)
}

// Rows returns the current rows as rendered.
func (c *Controller) Rows() []RowView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RowView, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, r.view(c.dirty.Has(r.id)))
	}
	return out
}

type Summary struct {
	Loaded      bool
	Rows        int
	TotalQty    float64
	TotalAmount float64
	Dirty       int
	Status      string
}

// Summary aggregates the current rows; amounts include unsaved previews.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Summary{Loaded: c.loaded, Rows: len(c.rows), Dirty: c.dirty.Len(), Status: c.status}
	for _, r := range c.rows {
		s.TotalQty += model.Number(r.qty)
		s.TotalAmount += r.amount
	}
	return s
}

func (c *Controller) setStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
	c.view.RenderStatus(s)
}

func (c *Controller) indexLocked(id int64) int {
	for i := range c.rows {
		if c.rows[i].id == id {
			return i
		}
	}
	return -1
}

type nopView struct{}

func (nopView) RenderRows([]RowView)        {}
func (nopView) RenderPreview(int64, string) {}
func (nopView) RenderStatus(string)         {}
func (nopView) RenderDirtyCount(string)     {}
func (nopView) ClearAddForm()               {}

type nopNotifier struct{}

func (nopNotifier) NotifyResult(bool, string, string) {}
