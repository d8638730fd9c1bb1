package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Every response is a flat JSON object:
//
//	{"success": bool, "message": string, "code"?: string, "field"?: string,
//	 "metadata": {...}, <payload keys>...}
//
// Payload keys sit next to success/message so clients read e.g. body.count
// or body.token directly.

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful response. Payload keys are merged into the
// top-level object; they cannot override success, message or metadata.
func Success(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	body["metadata"] = buildMetadata(c)
	c.JSON(statusCode, body)
}

// Fail sends an error response with the default message for code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, failBody(c, code, GetMessage(code), ""))
}

// FailWithMessage sends an error response with a specific message.
func FailWithMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, failBody(c, code, message, ""))
}

// FailField sends an error response attributed to one input field.
func FailField(c *gin.Context, statusCode int, code ErrCode, field, message string) {
	c.JSON(statusCode, failBody(c, code, message, field))
}

// FailWithPayload sends an error response carrying extra payload keys.
func FailWithPayload(c *gin.Context, statusCode int, code ErrCode, payload gin.H) {
	body := failBody(c, code, GetMessage(code), "")
	for k, v := range payload {
		if _, reserved := body[k]; !reserved {
			body[k] = v
		}
	}
	c.JSON(statusCode, body)
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, failBody(c, code, GetMessage(code), ""))
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func failBody(c *gin.Context, code ErrCode, message, field string) gin.H {
	body := gin.H{
		"success":  false,
		"message":  message,
		"code":     code,
		"metadata": buildMetadata(c),
	}
	if field != "" {
		body["field"] = field
	}
	return body
}

func buildMetadata(c *gin.Context) Metadata {
	id := RequestID(c)
	if id == "" {
		id = uuid.New().String() // Fallback if middleware not applied
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
