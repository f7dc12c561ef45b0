package public

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// stubQueryService records the query it receives and returns canned data.
type stubQueryService struct {
	lastList   application.ListQuery
	listPosts  []domain.MobilePost
	listMeta   application.PageMeta
	detailPost *domain.MobilePost
	detailErr  error
}

func (s *stubQueryService) List(_ context.Context, query application.ListQuery) ([]domain.MobilePost, application.PageMeta, error) {
	s.lastList = query
	return s.listPosts, s.listMeta, nil
}

func (s *stubQueryService) Detail(context.Context, string) (*domain.MobilePost, error) {
	return s.detailPost, s.detailErr
}

func newTestRouter(stub *stubQueryService) *chi.Mux {
	handler := NewHandler(Config{
		Logger:  log.New(os.Stderr, "", 0),
		Queries: stub,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func doGet(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	return rec, body
}

func localizedPost() domain.MobilePost {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seq := 1
	return domain.MobilePost{
		ID:         "00000001",
		MobileCode: "MPO1",
		Seq:        &seq,
		NameEN:     "Mobile Office 1",
		NameTC:     "流動郵政局一",
		DistrictEN: "Central",
		DistrictTC: "中西區",

		OpenHour:      "09:00",
		CloseHour:     "17:00",
		DayOfWeekCode: 3,

		ImportedAt: at,
		UpdatedAt:  at,
	}
}

func TestPostListDefaults(t *testing.T) {
	stub := &stubQueryService{
		listPosts: []domain.MobilePost{localizedPost()},
		listMeta:  application.PageMeta{Total: 1, Page: 1, Limit: 20, TotalPages: 1},
	}
	router := newTestRouter(stub)

	rec, body := doGet(t, router, "/api/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	wantQuery := application.ListQuery{
		Sort:   application.SortSpec{Key: application.SortByID, Lang: domain.LangEN},
		Paging: application.Paging{Page: 1, Limit: 20},
	}
	if diff := cmp.Diff(wantQuery, stub.lastList); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	meta := body["meta"].(map[string]any)
	if meta["total"] != float64(1) || meta["limit"] != float64(20) {
		t.Errorf("meta = %v", meta)
	}

	result := body["result"].([]any)
	first := result[0].(map[string]any)
	if first["name"] != "Mobile Office 1" {
		t.Errorf("default language should resolve English, got name = %v", first["name"])
	}
	if _, present := first["nameTC"]; present {
		t.Error("single-language view must not expose raw columns")
	}
}

func TestPostListParameters(t *testing.T) {
	stub := &stubQueryService{listMeta: application.PageMeta{Page: 2, Limit: 5}}
	router := newTestRouter(stub)

	rec, _ := doGet(t, router, "/api/posts?lang=tc&page=2&limit=5&sortBy=name&sortDir=desc&search=%E4%B8%AD&district=central&dayOfWeek=3&openAt=09:30&mobileCode=MPO1&seq=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	day, seq := 3, 1
	wantQuery := application.ListQuery{
		Filter: application.Filter{
			Search:     "中",
			District:   "central",
			DayOfWeek:  &day,
			OpenAt:     "09:30",
			MobileCode: "MPO1",
			Seq:        &seq,
		},
		Sort:   application.SortSpec{Key: application.SortByName, Descending: true, Lang: domain.LangTC},
		Paging: application.Paging{Page: 2, Limit: 5},
	}
	if diff := cmp.Diff(wantQuery, stub.lastList); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestPostListAllLanguages(t *testing.T) {
	stub := &stubQueryService{
		listPosts: []domain.MobilePost{localizedPost()},
		listMeta:  application.PageMeta{Total: 1, Page: 1, Limit: 20, TotalPages: 1},
	}
	router := newTestRouter(stub)

	_, body := doGet(t, router, "/api/posts?lang=all")
	first := body["result"].([]any)[0].(map[string]any)
	if first["nameTC"] != "流動郵政局一" {
		t.Errorf("lang=all must expose raw columns, nameTC = %v", first["nameTC"])
	}
	if first["nameSC"] != "" {
		t.Errorf("empty raw columns must still be present, nameSC = %v", first["nameSC"])
	}
	if first["name"] != "Mobile Office 1" {
		t.Errorf("EN alias missing, name = %v", first["name"])
	}
}

func TestPostListRejections(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown language", target: "/api/posts?lang=fr", wantStatus: 400, wantCode: "0105"},
		{name: "malformed page", target: "/api/posts?page=abc", wantStatus: 400, wantCode: "0106"},
		{name: "page below bound", target: "/api/posts?page=0", wantStatus: 400, wantCode: "0103"},
		{name: "limit above bound", target: "/api/posts?limit=500", wantStatus: 400, wantCode: "0103"},
		{name: "unknown sort key", target: "/api/posts?sortBy=latitude", wantStatus: 400, wantCode: "0103"},
		{name: "bad sort direction", target: "/api/posts?sortDir=up", wantStatus: 400, wantCode: "0103"},
		{name: "malformed dayOfWeek", target: "/api/posts?dayOfWeek=mon", wantStatus: 400, wantCode: "0106"},
		{name: "dayOfWeek out of range", target: "/api/posts?dayOfWeek=8", wantStatus: 400, wantCode: "0103"},
		{name: "malformed openAt", target: "/api/posts?openAt=9:99", wantStatus: 400, wantCode: "0104"},
		{name: "unpadded openAt", target: "/api/posts?openAt=9:30", wantStatus: 400, wantCode: "0104"},
		{name: "malformed seq", target: "/api/posts?seq=first", wantStatus: 400, wantCode: "0106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubQueryService{})
			rec, body := doGet(t, router, tt.target)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			header := body["header"].(map[string]any)
			if header["success"] != false {
				t.Errorf("header.success = %v, want false", header["success"])
			}
			if header["err_code"] != tt.wantCode {
				t.Errorf("err_code = %v, want %s", header["err_code"], tt.wantCode)
			}
		})
	}
}

func TestPostDetail(t *testing.T) {
	post := localizedPost()
	stub := &stubQueryService{detailPost: &post}
	router := newTestRouter(stub)

	rec, body := doGet(t, router, "/api/posts/00000001?lang=tc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	result := body["result"].(map[string]any)
	if result["name"] != "流動郵政局一" {
		t.Errorf("name = %v, want TC variant", result["name"])
	}
	if result["district"] != "中西區" {
		t.Errorf("district = %v, want TC variant", result["district"])
	}
}

func TestPostDetailNotFound(t *testing.T) {
	stub := &stubQueryService{detailErr: apperr.New(apperr.CodeNotFound, "")}
	router := newTestRouter(stub)

	rec, body := doGet(t, router, "/api/posts/99999999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	header := body["header"].(map[string]any)
	if header["err_code"] != "0201" {
		t.Errorf("err_code = %v, want 0201", header["err_code"])
	}
}
