// Package handlers contains the gin controllers for every route.
package handlers

import "github.com/gin-gonic/gin"

// errorBody builds the uniform error response. The error detail field is only
// included when detail is true (development environment).
func errorBody(detail bool, message string, err error) gin.H {
	body := gin.H{"message": message}
	if detail && err != nil {
		body["error"] = err.Error()
	}
	return body
}
