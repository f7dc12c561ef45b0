package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hkopendata/mobile-post-services/api/internal/infrastructure/memory"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

func newTestEnv(t *testing.T, source application.Source) (*chi.Mux, *memory.PostRepository) {
	t.Helper()
	repo := memory.NewPostRepository()
	logger := log.New(os.Stderr, "", 0)
	handler := NewHandler(Config{
		Logger:   logger,
		Commands: application.NewCommandService(repo),
		Importer: application.NewImportService(repo, logger),
		Source:   source,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router, repo
}

func doJSON(t *testing.T, router http.Handler, method, target, payload string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(payload))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

const createPayload = `{
	"mobileCode": "MPO1",
	"seq": 1,
	"nameEN": "Mobile Office 1",
	"districtEN": "Central and Western",
	"openHour": " 09:00 ",
	"closeHour": "17:00",
	"dayOfWeekCode": 3
}`

func TestPostCreate(t *testing.T) {
	router, repo := newTestEnv(t, nil)

	rec, body := doJSON(t, router, http.MethodPost, "/posts", createPayload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	header := body["header"].(map[string]any)
	if header["success"] != true || header["message"] != "post created" {
		t.Errorf("header = %v", header)
	}

	result := body["result"].(map[string]any)
	if result["openHour"] != "09:00" {
		t.Errorf("openHour = %v, want trimmed 09:00", result["openHour"])
	}
	if result["nameTC"] != "" {
		t.Errorf("admin response must include empty raw columns, nameTC = %v", result["nameTC"])
	}

	id := result["id"].(string)
	if _, err := repo.FindByID(context.Background(), id); err != nil {
		t.Errorf("created record not stored: %v", err)
	}
}

func TestPostCreateRejections(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantCode   string
	}{
		{name: "broken JSON", payload: `{"nameEN": `, wantStatus: 400, wantCode: "0103"},
		{
			name:       "missing schedule fields",
			payload:    `{"nameEN": "X", "districtEN": "Y"}`,
			wantStatus: 400,
			wantCode:   "0101",
		},
		{
			name:       "no name variant",
			payload:    `{"districtEN": "Central", "openHour": "09:00", "closeHour": "17:00", "dayOfWeekCode": 1}`,
			wantStatus: 400,
			wantCode:   "0101",
		},
		{
			name:       "bad time",
			payload:    `{"nameEN": "X", "districtEN": "Y", "openHour": "25:00", "closeHour": "17:00", "dayOfWeekCode": 1}`,
			wantStatus: 400,
			wantCode:   "0104",
		},
		{
			name:       "unpadded hour",
			payload:    `{"nameEN": "X", "districtEN": "Y", "openHour": "9:00", "closeHour": "17:00", "dayOfWeekCode": 1}`,
			wantStatus: 400,
			wantCode:   "0104",
		},
		{
			name:       "day out of range",
			payload:    `{"nameEN": "X", "districtEN": "Y", "openHour": "09:00", "closeHour": "17:00", "dayOfWeekCode": 9}`,
			wantStatus: 400,
			wantCode:   "0103",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestEnv(t, nil)
			rec, body := doJSON(t, router, http.MethodPost, "/posts", tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			header := body["header"].(map[string]any)
			if header["err_code"] != tt.wantCode {
				t.Errorf("err_code = %v, want %s", header["err_code"], tt.wantCode)
			}
		})
	}
}

func TestPostCreateDuplicate(t *testing.T) {
	router, _ := newTestEnv(t, nil)

	if rec, _ := doJSON(t, router, http.MethodPost, "/posts", createPayload); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}
	rec, body := doJSON(t, router, http.MethodPost, "/posts", createPayload)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409", rec.Code)
	}
	if body["header"].(map[string]any)["err_code"] != "0301" {
		t.Errorf("err_code = %v, want 0301", body["header"].(map[string]any)["err_code"])
	}
}

func TestPostUpdate(t *testing.T) {
	router, _ := newTestEnv(t, nil)
	_, created := doJSON(t, router, http.MethodPost, "/posts", createPayload)
	id := created["result"].(map[string]any)["id"].(string)

	t.Run("partial update applies only supplied fields", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPatch, "/posts/"+id, `{"nameTC": "流動郵政局一", "openHour": "08:30"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		result := body["result"].(map[string]any)
		if result["nameTC"] != "流動郵政局一" {
			t.Errorf("nameTC = %v", result["nameTC"])
		}
		if result["openHour"] != "08:30" {
			t.Errorf("openHour = %v, want 08:30", result["openHour"])
		}
		if result["nameEN"] != "Mobile Office 1" {
			t.Errorf("untouched nameEN changed: %v", result["nameEN"])
		}
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPatch, "/posts/"+id, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if body["header"].(map[string]any)["err_code"] != "0102" {
			t.Errorf("err_code = %v, want 0102", body["header"].(map[string]any)["err_code"])
		}
	})

	t.Run("broken JSON rejected", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPatch, "/posts/"+id, `{"nameEN"`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if body["header"].(map[string]any)["err_code"] != "0103" {
			t.Errorf("err_code = %v, want 0103", body["header"].(map[string]any)["err_code"])
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, body := doJSON(t, router, http.MethodPatch, "/posts/99999999", `{"nameEN": "X"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if body["header"].(map[string]any)["err_code"] != "0201" {
			t.Errorf("err_code = %v, want 0201", body["header"].(map[string]any)["err_code"])
		}
	})
}

func TestPostDelete(t *testing.T) {
	router, repo := newTestEnv(t, nil)
	_, created := doJSON(t, router, http.MethodPost, "/posts", createPayload)
	id := created["result"].(map[string]any)["id"].(string)

	rec, body := doJSON(t, router, http.MethodDelete, "/posts/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["header"].(map[string]any)["message"] != "post deleted" {
		t.Errorf("header = %v", body["header"])
	}
	if _, err := repo.FindByID(context.Background(), id); err == nil {
		t.Error("record still stored after delete")
	}

	rec, body = doJSON(t, router, http.MethodDelete, "/posts/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
	if body["header"].(map[string]any)["err_code"] != "0201" {
		t.Errorf("err_code = %v, want 0201", body["header"].(map[string]any)["err_code"])
	}
}
