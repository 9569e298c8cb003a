package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/dto"
	"stayhub/middleware"
	"stayhub/response"
	"stayhub/services"
	"stayhub/services/logger"
)

type BookingController struct {
	Bookings *services.BookingService
	Logger   logger.Logger
}

func NewBookingController(bookings *services.BookingService, log logger.Logger) BookingController {
	if log == nil {
		log = logger.Default()
	}
	return BookingController{Bookings: bookings, Logger: log}
}

func writePage(c *gin.Context, page *services.BookingPage) {
	items := page.Items
	if items == nil {
		items = []dto.BookingResponse{}
	}
	response.SuccessWithPagination(c, items, page.Page, page.Limit, page.Total)
}

// Create godoc
// @Summary  Admin booking; the bed becomes occupied
// @Tags     bookings
// @Param    body body dto.CreateBookingRequest true "booking"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response "validation or bed not available"
// @Router   /api/booking [post]
func (b BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := b.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Booking created successfully", booking)
}

// CreateFrontend godoc
// @Summary  Student booking request; the bed is held (onbook)
// @Tags     bookings
// @Param    body body dto.FrontendBookingRequest true "booking"
// @Success  201 {object} response.Response
// @Failure  401 {object} response.Response "student must login first"
// @Router   /api/frontend/booking [post]
func (b BookingController) CreateFrontend(c *gin.Context) {
	var req dto.FrontendBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := b.Bookings.CreateFrontend(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	b.Logger.Info("booking %s requested (session %s)", booking.BookingID, middleware.SessionID(c))
	response.Created(c, "Booking request submitted", booking)
}

func (b BookingController) List(c *gin.Context) {
	var q dto.BookingQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := b.Bookings.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writePage(c, page)
}

func (b BookingController) Stats(c *gin.Context) {
	var q dto.BookingQuery
	if !bindQuery(c, &q) {
		return
	}
	stats, err := b.Bookings.Stats(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (b BookingController) Get(c *gin.Context) {
	booking, err := b.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

func (b BookingController) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := b.Bookings.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Booking updated successfully", booking)
}

func (b BookingController) Delete(c *gin.Context) {
	if err := b.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Booking deleted successfully", nil)
}

// Student routes

func (b BookingController) StudentList(c *gin.Context) {
	var q dto.BookingQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := b.Bookings.ListForStudent(c.Request.Context(), middleware.PrincipalID(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writePage(c, page)
}

func (b BookingController) StudentCancel(c *gin.Context) {
	booking, err := b.Bookings.Cancel(c.Request.Context(), c.Param("id"), middleware.PrincipalID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Booking cancelled successfully", booking)
}

// Vendor routes

func (b BookingController) VendorList(c *gin.Context) {
	var q dto.BookingQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := b.Bookings.ListForVendor(c.Request.Context(), middleware.VendorScope(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	writePage(c, page)
}

func (b BookingController) VendorStats(c *gin.Context) {
	var q dto.BookingQuery
	if !bindQuery(c, &q) {
		return
	}
	stats, err := b.Bookings.VendorStats(c.Request.Context(), middleware.VendorScope(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (b BookingController) VendorUpdateStatus(c *gin.Context) {
	var req dto.BookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := b.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), req.BookingStatus)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Booking status updated", booking)
}
