package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error":   details,
	})
}
