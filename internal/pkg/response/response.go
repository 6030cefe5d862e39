package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Binary writes raw file bytes with the given content type. When download is
// true the file is sent as an attachment under fileName, otherwise inline.
func Binary(c *gin.Context, contentType, fileName string, body []byte, download bool) {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, fileName))
	c.Data(http.StatusOK, contentType, body)
}
