package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/dto"
	"stayhub/middleware"
	"stayhub/response"
	"stayhub/services"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{Rooms: rooms}
}

func (r RoomController) List(c *gin.Context) {
	rooms, err := r.Rooms.ListRooms(c.Request.Context(), c.Param("id"), middleware.VendorScope(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (r RoomController) Get(c *gin.Context) {
	room, err := r.Rooms.GetRoom(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), c.Param("roomId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// Create godoc
// @Summary  Add a room; beds are generated from totalBeds
// @Tags     vendor
// @Param    id   path string          true "property id"
// @Param    body body dto.RoomRequest true "room"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /api/vendor-properties/{id}/rooms [post]
func (r RoomController) Create(c *gin.Context) {
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, prop, err := r.Rooms.AddRoom(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Room added successfully", gin.H{"room": room, "property": prop})
}

func (r RoomController) Update(c *gin.Context) {
	var req dto.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, prop, err := r.Rooms.UpdateRoom(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), c.Param("roomId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Room updated successfully", gin.H{"room": room, "property": prop})
}

func (r RoomController) Delete(c *gin.Context) {
	prop, err := r.Rooms.DeleteRoom(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), c.Param("roomId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Room deleted successfully", prop)
}

// SetBedStatus godoc
// @Summary  Switch a bed to available, maintenance or notice
// @Tags     vendor
// @Param    body body dto.BedStatusRequest true "status"
// @Success  200 {object} response.Response
// @Router   /api/vendor-properties/{id}/beds/{roomId}/{bedId} [patch]
func (r RoomController) SetBedStatus(c *gin.Context) {
	var req dto.BedStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	bed, err := r.Rooms.SetBedStatus(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), c.Param("roomId"), c.Param("bedId"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Bed status updated", bed)
}
