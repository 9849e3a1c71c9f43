package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActorID extracts the authenticated actor id injected by the Auth
// middleware. An empty id means the middleware did not run or the token
// carried no identity; either way the request cannot be attributed to an
// actor and is rejected before any service call.
func ctxActorID(c echo.Context) (string, error) {
	actorID, _ := c.Get("user_id").(string)
	if actorID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actorID, nil
}
