package cache

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// KeyFunc decides whether a request is cacheable and under which key.
type KeyFunc func(r *http.Request) (site, page string, ok bool)

// Middleware serves cached pages and captures successful HTML responses.
func (p *PageCache) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == nil || c.Request.Method != http.MethodGet || c.Request.URL.RawQuery != "" {
			c.Next()
			return
		}
		site, page, ok := key(c.Request)
		if !ok {
			c.Next()
			return
		}

		if cached, found := p.Read(site, page); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		writer := &responseWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK && strings.HasPrefix(writer.Header().Get("Content-Type"), "text/html") {
			if err := p.Write(site, page, writer.body.String()); err != nil {
				p.log.Warn("failed to write page cache", zap.String("site", site), zap.String("page", page), zap.Error(err))
			}
		}
	}
}
