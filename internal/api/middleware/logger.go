package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, client, status, latency and, when the request was
// authenticated, the recruiter behind it.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		recruiter := "-"
		if userID, err := GetUserIDFromContext(c); err == nil {
			recruiter = userID.String()
		}
		log.Printf(
			"[%s] %s %s %d %s recruiter=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			recruiter,
		)
		for _, e := range c.Errors {
			log.Printf("[%s] %s error: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
	}
}
