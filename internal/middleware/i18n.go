// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// resolveLanguage walks "hi-IN,hi;q=0.9,en;q=0.8" in order and returns the
// first supported base language.
func resolveLanguage(header, defaultLang string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		fields := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
		if len(fields) == 0 {
			continue
		}
		if base := strings.ToLower(fields[0]); i18n.IsSupported(base) {
			return base
		}
	}
	return defaultLang
}
