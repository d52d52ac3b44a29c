package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRewriteEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RewriteLegacyPaths)
	r.GET("/holod1/:spot", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/other", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRewriteLegacyPaths(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
		wantLoc  string
	}{
		{name: "holod1Alias", path: "/I/Holod1", wantCode: http.StatusMovedPermanently, wantLoc: "/holod1/1"},
		{name: "holod2Alias", path: "/I/Holod2", wantCode: http.StatusMovedPermanently, wantLoc: "/holod1/2"},
		{name: "barePrefix", path: "/I", wantCode: http.StatusMovedPermanently, wantLoc: "/"},
		{name: "stripPrefix", path: "/I/a/b", wantCode: http.StatusMovedPermanently, wantLoc: "/a/b"},
		{name: "queryPreserved", path: "/I/a/b?x=1&y=2", wantCode: http.StatusMovedPermanently, wantLoc: "/a/b?x=1&y=2"},
		{name: "aliasQueryPreserved", path: "/I/Holod1?promo=X", wantCode: http.StatusMovedPermanently, wantLoc: "/holod1/1?promo=X"},
		{name: "otherPathsUntouched", path: "/other", wantCode: http.StatusOK},
		{name: "prefixMustMatchSegment", path: "/Inventory", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRewriteEngine()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantLoc != "" {
				if got := w.Header().Get("Location"); got != tt.wantLoc {
					t.Errorf("Location = %q, want %q", got, tt.wantLoc)
				}
			}
		})
	}
}
