package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"questionbank/services"
	"questionbank/testutil"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *services.QuestionBank) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bank := services.NewQuestionBank(testutil.SetupTestDB(t), nil)
	qh := NewQuestionHandler(bank.Questions)
	ah := NewAnswerHandler(bank.Answers)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/questions", qh.GetQuestions)
	api.GET("/question", qh.GetRandomQuestion)
	api.GET("/questions/:id", qh.GetQuestion)
	api.POST("/questions/add", qh.AddQuestion)
	api.PUT("/questions/:id", qh.UpdateQuestion)
	api.DELETE("/questions/:id", qh.DeleteQuestion)
	api.GET("/questions/:id/answer", ah.GetAnswer)
	api.POST("/questions/:id/answer", ah.AddAnswer)
	api.PUT("/questions/:id/answer", ah.UpdateAnswer)
	api.DELETE("/questions/:id/answer", ah.DeleteAnswer)

	return router, bank
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(data))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func addQuestion(t *testing.T, router *gin.Engine, q services.Question) uint {
	t.Helper()
	rr := doRequest(t, router, http.MethodPost, "/api/v1/questions/add", q)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add question: status %d, body %s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, rr, &created)
	return created.ID
}

func TestAddAndGetQuestion(t *testing.T) {
	router, _ := setupRouter(t)

	id := addQuestion(t, router, services.Question{
		Title:   "Capital",
		Content: "Capital of France?",
		Tags:    []string{"geo"},
	})

	rr := doRequest(t, router, http.MethodGet, "/api/v1/questions/"+itoa(id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body %s", rr.Code, rr.Body.String())
	}

	var got services.Question
	decode(t, rr, &got)
	want := services.Question{ID: id, Title: "Capital", Content: "Capital of France?", Tags: []string{"geo"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GET = %+v, want %+v", got, want)
	}
}

func TestGetQuestionErrors(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/questions/99", "/api/v1/questions/abc"} {
		rr := doRequest(t, router, http.MethodGet, path, nil)
		if rr.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rr.Code)
		}
		var body ErrorBody
		decode(t, rr, &body)
		if body.Status != "404" || body.Error == "" {
			t.Errorf("GET %s error body = %+v", path, body)
		}
	}
}

func TestAddQuestionBadRequest(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"malformed", `{"title":`},
		{"missing content", map[string]interface{}{"title": "only a title"}},
		{"blank title", map[string]interface{}{"title": "  ", "content": "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/api/v1/questions/add", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestListQuestions(t *testing.T) {
	router, _ := setupRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/api/v1/questions", nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("empty bank status = %d, want 204", rr.Code)
	}

	for i := 0; i < 5; i++ {
		addQuestion(t, router, services.Question{Title: "Q", Content: "C"})
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
	}{
		{"all", "", http.StatusOK, 5},
		{"first page", "?page=1&limit=2", http.StatusOK, 2},
		{"last page", "?page=3&limit=2", http.StatusOK, 1},
		{"limit only", "?limit=3", http.StatusOK, 3},
		{"page only", "?page=1", http.StatusOK, 5},
		{"end of bank", "?page=6&limit=1", http.StatusOK, 0},
		{"past the end", "?page=4&limit=2", http.StatusNotFound, 0},
		{"zero page", "?page=0&limit=2", http.StatusNotFound, 0},
		{"not a number", "?page=one&limit=2", http.StatusNotFound, 0},
		{"huge values", "?page=4294967297&limit=4294967296", http.StatusNotFound, 0},
		{"huge limit", "?page=3&limit=4611686018427387904", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, "/api/v1/questions"+tt.query, nil)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got []services.Question
			decode(t, rr, &got)
			if len(got) != tt.wantLen {
				t.Errorf("got %d questions, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestRandomQuestion(t *testing.T) {
	router, _ := setupRouter(t)

	if rr := doRequest(t, router, http.MethodGet, "/api/v1/question", nil); rr.Code != http.StatusNoContent {
		t.Errorf("empty bank status = %d, want 204", rr.Code)
	}

	id := addQuestion(t, router, services.Question{Title: "Only", Content: "one"})
	rr := doRequest(t, router, http.MethodGet, "/api/v1/question", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var got services.Question
	decode(t, rr, &got)
	if got.ID != id {
		t.Errorf("random question id = %d, want %d", got.ID, id)
	}
}

func TestUpdateQuestion(t *testing.T) {
	router, _ := setupRouter(t)

	id := addQuestion(t, router, services.Question{Title: "Old", Content: "old", Tags: []string{"a", "b"}})
	path := "/api/v1/questions/" + itoa(id)

	rr := doRequest(t, router, http.MethodPut, path, services.Question{Title: "New", Content: "new", Tags: []string{"c"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", rr.Code, rr.Body.String())
	}

	var got services.Question
	decode(t, doRequest(t, router, http.MethodGet, path, nil), &got)
	if got.Title != "New" || !reflect.DeepEqual(got.Tags, []string{"c"}) {
		t.Errorf("after PUT got %+v", got)
	}

	tests := []struct {
		name       string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"unknown id", "/api/v1/questions/999", services.Question{Title: "T", Content: "C"}, http.StatusNotFound},
		{"empty body", path, nil, http.StatusNotFound},
		{"malformed", path, `{"title":`, http.StatusUnprocessableEntity},
		{"missing title", path, map[string]interface{}{"content": "c"}, http.StatusUnprocessableEntity},
		{"id mismatch", path, services.Question{ID: id + 1, Title: "T", Content: "C"}, http.StatusUnprocessableEntity},
		{"bad id", "/api/v1/questions/x", services.Question{Title: "T", Content: "C"}, http.StatusBadRequest},
		{"invalid payload for unknown id", "/api/v1/questions/999", map[string]interface{}{"content": "c"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPut, tt.path, tt.body)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	router, _ := setupRouter(t)

	id := addQuestion(t, router, services.Question{Title: "T", Content: "C"})
	path := "/api/v1/questions/" + itoa(id)

	if rr := doRequest(t, router, http.MethodPost, path+"/answer", services.Answer{Content: "A"}); rr.Code != http.StatusCreated {
		t.Fatalf("POST answer status = %d, body %s", rr.Code, rr.Body.String())
	}

	if rr := doRequest(t, router, http.MethodDelete, path, nil); rr.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", rr.Code)
	}
	if rr := doRequest(t, router, http.MethodGet, path, nil); rr.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want 404", rr.Code)
	}
	if rr := doRequest(t, router, http.MethodGet, path+"/answer", nil); rr.Code != http.StatusNotFound {
		t.Errorf("GET answer after DELETE status = %d, want 404", rr.Code)
	}
	if rr := doRequest(t, router, http.MethodDelete, "/api/v1/questions/zero", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("DELETE bad id status = %d, want 400", rr.Code)
	}
}

func TestStoreFailureHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	qh := NewQuestionHandler(services.NewQuestionBank(db, nil).Questions)
	router := gin.New()
	router.GET("/api/v1/questions", qh.GetQuestions)
	router.GET("/api/v1/questions/:id", qh.GetQuestion)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.Close()

	for _, path := range []string{"/api/v1/questions", "/api/v1/questions/1", "/api/v1/questions?page=1&limit=2"} {
		rr := doRequest(t, router, http.MethodGet, path, nil)
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("GET %s status = %d, want 500", path, rr.Code)
			continue
		}
		var body ErrorBody
		decode(t, rr, &body)
		want := ErrorBody{Status: "500", Error: http.StatusText(http.StatusInternalServerError)}
		if body != want {
			t.Errorf("GET %s error body = %+v, want %+v", path, body, want)
		}
	}
}
