// Package notify holds the transient toasts and the single blocking modal that
// report the outcome of user-visible operations.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

const (
	SuccessTTL = 2500 * time.Millisecond
	FailureTTL = 4500 * time.Millisecond

	fallbackFailure = "원인을 확인해주세요."
)

type Toast struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	CreatedAt time.Time
	TTL       time.Duration
}

type Modal struct {
	Title   string
	Message string
}

type Center struct {
	mu     sync.Mutex
	toasts map[string]*toastEntry
	seq    uint64
	modal  *Modal

	// OnChange runs (outside the lock) after toasts or the modal change,
	// including timer-driven toast expiry.
	OnChange func()

	now func() time.Time
}

type toastEntry struct {
	seq   uint64
	toast Toast
	timer *time.Timer
}

func NewCenter() *Center {
	return &Center{toasts: map[string]*toastEntry{}, now: time.Now}
}

// NotifyResult shows a toast and a modal for an operation outcome. context is
// a short label ("일괄 저장"); detail is optional extra text on success and
// the failure reason on failure.
func (c *Center) NotifyResult(ok bool, context, detail string) {
	if ok {
		msg := context + " 완료"
		c.Toast(KindSuccess, "성공", msg, SuccessTTL)
		body := msg
		if detail != "" {
			body += "\n\n" + detail
		}
		c.ShowModal("성공", body)
		return
	}
	msg := detail
	if msg == "" {
		msg = fallbackFailure
	}
	c.Toast(KindError, "실패", context+" 실패: "+msg, FailureTTL)
	c.ShowModal("실패", context+" 실패\n\n"+msg)
}

// Toast adds a toast that removes itself after ttl. It returns the toast id.
func (c *Center) Toast(kind Kind, title, message string, ttl time.Duration) string {
	id := uuid.NewString()
	c.mu.Lock()
	c.seq++
	e := &toastEntry{seq: c.seq, toast: Toast{
		ID:        id,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: c.now(),
		TTL:       ttl,
	}}
	if ttl > 0 {
		e.timer = time.AfterFunc(ttl, func() { c.DismissToast(id) })
	}
	c.toasts[id] = e
	c.mu.Unlock()
	c.changed()
	return id
}

// DismissToast removes one toast; unknown ids are ignored.
func (c *Center) DismissToast(id string) {
	c.mu.Lock()
	e, ok := c.toasts[id]
	if ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.toasts, id)
	}
	c.mu.Unlock()
	if ok {
		c.changed()
	}
}

// Toasts returns the live toasts, oldest first.
func (c *Center) Toasts() []Toast {
	c.mu.Lock()
	entries := make([]*toastEntry, 0, len(c.toasts))
	for _, e := range c.toasts {
		entries = append(entries, e)
	}
	c.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]Toast, len(entries))
	for i, e := range entries {
		out[i] = e.toast
	}
	return out
}

// ShowModal replaces any open modal.
func (c *Center) ShowModal(title, message string) {
	c.mu.Lock()
	c.modal = &Modal{Title: title, Message: message}
	c.mu.Unlock()
	c.changed()
}

func (c *Center) CloseModal() {
	c.mu.Lock()
	had := c.modal != nil
	c.modal = nil
	c.mu.Unlock()
	if had {
		c.changed()
	}
}

// Modal returns the open modal, if any.
func (c *Center) Modal() (Modal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal == nil {
		return Modal{}, false
	}
	return *c.modal, true
}

func (c *Center) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
