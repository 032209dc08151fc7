package handlers

import (
	"net/http"

	reservationRepo "wingman/database/repository/reservation"
	"wingman/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes read access to the reservation ledger.
type ReservationHandler struct {
	Ledger reservationRepo.Ledger
}

func NewReservationHandler(ledger reservationRepo.Ledger) *ReservationHandler {
	return &ReservationHandler{Ledger: ledger}
}

// ListReservationsHandler returns all booked reservations, newest first.
func (h *ReservationHandler) ListReservationsHandler(c *gin.Context) {
	reservations, err := h.Ledger.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservationHandler returns one reservation by its ID.
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	res, err := h.Ledger.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Reservation not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}
