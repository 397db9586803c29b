package contracts

import (
	"theworks/pkg/auth"

	"github.com/julienschmidt/httprouter"
)

// Handler registers its routes together with the access policy each one
// requires; the registration site is the auditable policy table.
type Handler interface {
	RegisterRoutes(router *httprouter.Router, guard *auth.Guard)
}
