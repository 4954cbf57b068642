package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramancoder123/dicideon/internals/locations"
	"github.com/ramancoder123/dicideon/internals/models"
	"github.com/ramancoder123/dicideon/internals/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sentMessage struct {
	recipient string
	template  notify.Template
	data      map[string]string
}

type fakeDispatcher struct {
	sent    []sentMessage
	sendErr error
}

func (f *fakeDispatcher) Send(recipient string, template notify.Template, data map[string]string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{recipient: recipient, template: template, data: data})
	return nil
}

func (f *fakeDispatcher) Configured() bool { return f.sendErr == nil }

func (f *fakeDispatcher) byTemplate(template notify.Template) []sentMessage {
	var out []sentMessage
	for _, m := range f.sent {
		if m.template == template {
			out = append(out, m)
		}
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SignupRequest{},
		&models.PasswordReset{},
		&models.Session{},
		&models.Blacklist{},
	))
	return db
}

// newTestLocations writes a minimal data directory and loads it.
func newTestLocations(t *testing.T) *locations.Store {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "countries.csv"),
		"id,name,iso2,phonecode\n1,United Kingdom,GB,44\n2,United States,US,1\n")
	writeFile(t, filepath.Join(dir, "states.csv"), "id,name\n1,England\n")
	writeFile(t, filepath.Join(dir, "cities.csv"), "id,name\n1,London\n")

	store, err := locations.Load(dir)
	require.NoError(t, err)
	return store
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
