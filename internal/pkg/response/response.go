package response

import "github.com/gin-gonic/gin"

// Success writes the {success,data} envelope shared by every endpoint.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Paginated wraps a list payload with the page/limit/total block the
// tour and blog listings share before writing the success envelope.
func Paginated(c *gin.Context, statusCode int, data gin.H, page, limit int, total int64) {
	totalPages := 0
	if limit > 0 {
		totalPages = (int(total) + limit - 1) / limit
	}
	data["pagination"] = gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
	Success(c, statusCode, data)
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

// ErrorWithDetails carries a details payload alongside the error code,
// used for binding failures where the validator message helps the client.
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
