package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/api/middleware"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// MustGetPrincipal extracts the authenticated caller from the context.
// When the auth middleware did not run it writes a 401 and returns
// ok=false; the caller should return immediately.
func MustGetPrincipal(c *gin.Context) (*policy.Principal, bool) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return p, true
}
