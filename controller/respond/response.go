package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response codes
const (
	CodeSuccess      = 0
	CodeInvalidParam = 40000
	CodeNotFound     = 40400
	CodeServerError  = 50000
)

const startTimeKey = "request_start_time"

// Response unified response envelope
type Response struct {
	Code           int         `json:"code" example:"0"`
	Message        string      `json:"message" example:"success"`
	Data           interface{} `json:"data"`
	ProcessingTime int64       `json:"processing_time" example:"3"` // milliseconds
}

// TimingMiddleware records the request start so the envelope can report processing time
func TimingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startTimeKey, time.Now())
		c.Next()
	}
}

func processingTime(c *gin.Context) int64 {
	v, ok := c.Get(startTimeKey)
	if !ok {
		return 0
	}
	start, ok := v.(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start).Milliseconds()
}

func write(c *gin.Context, status, code int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:           code,
		Message:        message,
		Data:           data,
		ProcessingTime: processingTime(c),
	})
}

// Success 200 with data
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, CodeSuccess, "success", data)
}

// InvalidParam 400
func InvalidParam(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, CodeInvalidParam, message, nil)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	write(c, http.StatusNotFound, CodeNotFound, message, nil)
}

// ServerError 500
func ServerError(c *gin.Context, message string) {
	write(c, http.StatusInternalServerError, CodeServerError, message, nil)
}
