package middleware

import (
	"github.com/gin-gonic/gin"

	"taskflow/pkg/translator"
)

const langKey = "lang"

// LanguageMiddleware negotiates the Accept-Language header against the loaded
// translations and stores the result for error messages.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, translator.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang := c.GetString(langKey); lang != "" {
		return lang
	}
	return translator.LanguageEn
}
