package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RewriteLegacyPaths redirects the deprecated /I URL space before any
// routing runs:
//
//	/I/Holod1  -> /holod1/1
//	/I/Holod2  -> /holod1/2
//	/I, /I/... -> strip the /I prefix once
//
// The query string is preserved verbatim. Every other path passes through
// untouched; this produces no state, only a redirect.
func RewriteLegacyPaths(c *gin.Context) {
	path := c.Request.URL.Path

	var target string
	switch path {
	case "/I/Holod1":
		target = "/holod1/1"
	case "/I/Holod2":
		target = "/holod1/2"
	case "/I":
		target = "/"
	default:
		if strings.HasPrefix(path, "/I/") {
			target = strings.TrimPrefix(path, "/I")
		}
	}
	if target == "" {
		c.Next()
		return
	}
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	c.Redirect(http.StatusMovedPermanently, target)
	c.Abort()
}
