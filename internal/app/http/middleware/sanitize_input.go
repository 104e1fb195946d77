package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Fields carrying reader-visible prose keep basic formatting; everything else
// is stripped to plain text.
var richTextFields = map[string]bool{
	"content": true,
	"summary": true,
}

// SanitizeInputMiddleware cleans all top-level string fields of JSON bodies
// with bluemonday before binding.
func SanitizeInputMiddleware() gin.HandlerFunc {
	strict := bluemonday.StrictPolicy()
	ugc := bluemonday.UGCPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(buf) == 0 {
			c.Next()
			return
		}

		var body map[string]interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			str, ok := v.(string)
			if !ok {
				continue
			}
			if richTextFields[k] {
				body[k] = ugc.Sanitize(str)
			} else {
				body[k] = strict.Sanitize(str)
			}
		}

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}
