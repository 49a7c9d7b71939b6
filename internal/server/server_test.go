package server

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fishinv/internal/api"
	"fishinv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*api.Client, *Repo) {
	t.Helper()
	ctx := context.Background()
	db, err := OpenDB(ctx, filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepo(db)
	srv := httptest.NewServer(Routes(repo, log.New(io.Discard, "", 0)))
	t.Cleanup(srv.Close)
	return api.New(api.Options{BaseURL: srv.URL}), repo
}

func TestServer_CRUD(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	rows, err := c.ListInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = c.CreateRow(ctx, model.NewRow{Fish: "고등어", Size: "중", Qty: 2, UnitPrice: 3000})
	require.NoError(t, err)

	rows, err = c.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6000.0, rows[0].Amount)

	p := rows[0].Payload()
	p.Qty = 5
	require.NoError(t, c.UpdateRow(ctx, p))

	rows, err = c.ListInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, rows[0].Amount)

	require.NoError(t, c.DeleteRow(ctx, p.ID))
	err = c.DeleteRow(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, api.Detail(err), "not found")
}

func TestServer_CreateRequiresFish(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.CreateRow(context.Background(), model.NewRow{Fish: "  ", Qty: 1})
	require.Error(t, err)
	var he *api.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "fish is required", he.Message)
}

func TestServer_BulkIsAllOrNothing(t *testing.T) {
	c, repo := newTestServer(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, model.NewRow{Fish: "갈치", Qty: 1, UnitPrice: 100})
	require.NoError(t, err)
	b, err := repo.Create(ctx, model.NewRow{Fish: "광어", Qty: 1, UnitPrice: 200})
	require.NoError(t, err)

	// Unknown id: nothing is applied.
	err = c.BulkUpdate(ctx, []model.RowPayload{
		{ID: a.ID, Fish: "갈치", Qty: 9, UnitPrice: 100},
		{ID: 999, Fish: "없음"},
	})
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Qty)

	require.NoError(t, c.BulkUpdate(ctx, []model.RowPayload{
		{ID: a.ID, Fish: "갈치", Qty: 9, UnitPrice: 100},
		{ID: b.ID, Fish: "광어", Qty: 2, UnitPrice: 200},
	}))
	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 900.0, rows[0].Amount)
	assert.Equal(t, 400.0, rows[1].Amount)

	// Empty batch is a no-op success.
	require.NoError(t, c.BulkUpdate(ctx, nil))
}

func TestServer_ErrorBodies(t *testing.T) {
	db, err := OpenDB(context.Background(), filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	defer db.Close()
	h := Routes(NewRepo(db), log.New(io.Discard, "", 0))

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodPut, "/api/inventory/abc", `{}`, http.StatusBadRequest},
		{http.MethodPut, "/api/inventory/7", `{"fish":"x"}`, http.StatusNotFound},
		{http.MethodPost, "/api/inventory", `{"fish":`, http.StatusBadRequest},
		{http.MethodPost, "/api/inventory/bulk", `{"items":[{"id":0}]}`, http.StatusBadRequest},
		{http.MethodGet, "/api/nothing", ``, http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), `"error"`, "%s %s", tc.method, tc.path)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var logs bytes.Buffer
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, Config{
			Addr:   "127.0.0.1:0",
			DBPath: filepath.Join(t.TempDir(), "inventory.db"),
			Logger: log.New(&logs, "", 0),
			Ready:  func(addr string) { ready <- addr },
		})
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	rows, err := api.New(api.Options{BaseURL: "http://" + addr}).ListInventory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
