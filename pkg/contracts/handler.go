package contracts

import (
	"marketplace/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Handler is implemented by every domain HTTP handler. Routes that need a capability
// wrap themselves with gate.Require.
type Handler interface {
	RegisterRoutes(router *httprouter.Router, gate *middleware.Gate)
}
