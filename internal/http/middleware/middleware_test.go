package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"root_tycoon/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSimpleRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/x", SimpleRateLimit(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Fatalf("codes = %v", codes)
	}
}

func TestJWT(t *testing.T) {
	service.InitJWT("test-secret")
	token, err := service.GenerateJWT(42)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", 401},
		{"not bearer", "Token " + token, 401},
		{"bad token", "Bearer abc", 401},
		{"ok", "Bearer " + token, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestActionRateLimitPerUser(t *testing.T) {
	service.InitJWT("test-secret")
	tokA, _ := service.GenerateJWT(1)
	tokB, _ := service.GenerateJWT(2)

	r := gin.New()
	r.POST("/act", JWT(), ActionRateLimit(1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(tok string) int {
		req := httptest.NewRequest(http.MethodPost, "/act", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	if c := do(tokA); c != 200 {
		t.Fatalf("first A = %d", c)
	}
	if c := do(tokA); c != 429 {
		t.Fatalf("second A = %d", c)
	}
	if c := do(tokB); c != 200 {
		t.Fatalf("first B = %d", c)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("no request id assigned")
	}
}

func TestLocalLimiterWindowReset(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	l := newLocalLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	if blocked, _ := l.hit("k"); blocked {
		t.Fatal("first hit blocked")
	}
	now = now.Add(20 * time.Second)
	blocked, reset := l.hit("k")
	if !blocked || reset != 40*time.Second {
		t.Fatalf("blocked=%v reset=%v", blocked, reset)
	}
	if blocked, _ := l.hit("other"); blocked {
		t.Fatal("keys share a window")
	}

	now = now.Add(40 * time.Second)
	if blocked, _ := l.hit("k"); blocked {
		t.Fatal("window did not reset")
	}
}
