package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/store"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestLibrary wires a Library onto the test app with a throwaway
// snapshot directory.
func newTestLibrary(t *testing.T, app *pocketbase.PocketBase) *store.Library {
	t.Helper()
	return store.NewLibrary(store.NewRecordStore(app), store.NewSnapshotStore(t.TempDir()))
}
