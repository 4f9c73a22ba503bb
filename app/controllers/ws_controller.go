package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/response"
	"github.com/shashiranjanraj/dinehub/pkg/ws"
)

// WSController upgrades authenticated staff connections onto the order
// event feed.
type WSController struct {
	hub *ws.Hub
}

func NewWSController(hub *ws.Hub) *WSController {
	return &WSController{hub: hub}
}

// Connect handles GET /ws. The Auth middleware runs before this, so an
// identity is always present; the role is recorded on the client for
// observability only, every client receives every event.
func (c *WSController) Connect(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	ws.Upgrade(w, r, c.hub, identity.Role)
}
