package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jfmanager/web/routes"
	"github.com/jfmanager/web/store"
)

// Guard is the navigation guard: unauthenticated access to a protected
// page redirects to the login page, and an authenticated user asking for
// the login page goes home instead.
func Guard(auth *store.AuthStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		switch {
		case routes.RequiresAuth(path) && !auth.IsAuthenticated():
			c.Redirect(http.StatusFound, routes.Login)
			c.Abort()

		case path == routes.Login && auth.IsAuthenticated():
			c.Redirect(http.StatusFound, routes.Home)
			c.Abort()

		default:
			c.Next()
		}
	}
}
