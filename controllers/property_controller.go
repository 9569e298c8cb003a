package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/dto"
	"stayhub/middleware"
	"stayhub/response"
	"stayhub/services"
)

// PropertyController serves the public, vendor and admin property routes.
// Vendor routes are scoped to the caller; admin routes see everything.
type PropertyController struct {
	Properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) PropertyController {
	return PropertyController{Properties: properties}
}

// ListPublic godoc
// @Summary  Browse published properties
// @Tags     public
// @Param    city   query string false "city"
// @Param    type   query string false "Hostel, PG or Both"
// @Param    gender query string false "gender policy"
// @Param    page   query int    false "page"
// @Param    limit  query int    false "limit"
// @Success  200 {object} response.Response
// @Router   /api/properties [get]
func (p PropertyController) ListPublic(c *gin.Context) {
	var q dto.PropertyQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := p.Properties.ListPublic(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, result.Items, result.Page, result.Limit, result.Total)
}

func (p PropertyController) GetPublic(c *gin.Context) {
	prop, err := p.Properties.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, prop)
}

func (p PropertyController) List(c *gin.Context) {
	var q dto.PropertyQuery
	if !bindQuery(c, &q) {
		return
	}
	props, page, limit, total, err := p.Properties.List(c.Request.Context(), middleware.VendorScope(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, props, page, limit, total)
}

// Create godoc
// @Summary  Create a property (starts as draft)
// @Tags     vendor
// @Param    body body dto.PropertyRequest true "property"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /api/vendor-properties [post]
func (p PropertyController) Create(c *gin.Context) {
	var req dto.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	prop, err := p.Properties.Create(c.Request.Context(), middleware.VendorScope(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Property created successfully", prop)
}

func (p PropertyController) Get(c *gin.Context) {
	prop, err := p.Properties.Get(c.Request.Context(), c.Param("id"), middleware.VendorScope(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, prop)
}

// Update is the vendor edit; the listing goes back to draft.
func (p PropertyController) Update(c *gin.Context) {
	var req dto.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	prop, err := p.Properties.Update(c.Request.Context(), c.Param("id"), middleware.VendorScope(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Property updated successfully", prop)
}

func (p PropertyController) AdminUpdate(c *gin.Context) {
	var req dto.AdminPropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	prop, err := p.Properties.AdminUpdate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Property updated successfully", prop)
}

func (p PropertyController) SetStatus(c *gin.Context) {
	var req dto.PropertyStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	prop, err := p.Properties.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Property status updated", prop)
}

func (p PropertyController) Delete(c *gin.Context) {
	if err := p.Properties.SoftDelete(c.Request.Context(), c.Param("id"), middleware.VendorScope(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, "Property deleted successfully", nil)
}
