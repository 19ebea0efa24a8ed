// Package response writes the uniform {code, data, messages} envelope.
// The transport status is always 200; Code carries the outcome.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logical result codes carried in the envelope.
const (
	CodeOK       = 200
	CodeInvalid  = 401
	CodeNotFound = 404
	CodeFailure  = 500
)

// Envelope is the wire wrapper used for every response.
type Envelope struct {
	Code     int         `json:"code"`
	Data     interface{} `json:"data"`
	Messages interface{} `json:"messages"`
}

// ValidationErrors maps a request field to its messages.
type ValidationErrors map[string][]string

// Add appends msg to the messages of field.
func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Page is the paginated list payload.
type Page struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
}

func empty() []interface{} {
	return []interface{}{}
}

// OK writes a successful envelope.
func OK(c *gin.Context, data interface{}, message string) {
	if data == nil {
		data = empty()
	}
	c.JSON(http.StatusOK, Envelope{Code: CodeOK, Data: data, Messages: message})
}

// Fail writes a failure envelope with an empty data list.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Envelope{Code: code, Data: empty(), Messages: message})
}

// Invalid writes a field-level validation failure.
func Invalid(c *gin.Context, errs ValidationErrors) {
	c.JSON(http.StatusOK, Envelope{Code: CodeInvalid, Data: empty(), Messages: errs})
}

// NotFound writes a not-found failure.
func NotFound(c *gin.Context, message string) {
	Fail(c, CodeNotFound, message)
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(http.StatusOK, Envelope{Code: code, Data: empty(), Messages: message})
}
