package response

import (
	"net/http"

	"staking-client/pkg/errno"

	"github.com/gin-gonic/gin"
)

// Response defines the standard JSON structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error returns an error response. The HTTP status stays 200 except for
// missing resources; clients switch on Code.
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	status := http.StatusOK
	if code == errno.ErrNotFound.Code {
		status = http.StatusNotFound
	}
	c.JSON(status, Response{
		Code:    code,
		Message: msg,
		Data:    gin.H{},
	})
}
