package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	// Chat endpoint.
	ChatHandler gin.HandlerFunc

	// Reservation ledger endpoints.
	ListReservationsHandler gin.HandlerFunc
	GetReservationHandler   gin.HandlerFunc
}
