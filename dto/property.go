package dto

import (
	"encoding/json"

	"stayhub/models"
)

// PropertyRequest is the body of create and update. Rooms are managed
// through their own endpoints and are never accepted here.
type PropertyRequest struct {
	Name          string              `json:"name" binding:"required"`
	Type          models.PropertyType `json:"type" binding:"required,oneof=Hostel PG Both"`
	Gender        string              `json:"gender" binding:"required"`
	Address       string              `json:"address"`
	Area          string              `json:"area" binding:"required"`
	City          string              `json:"city" binding:"required"`
	State         string              `json:"state" binding:"required"`
	Pincode       string              `json:"pincode" binding:"required"`
	ContactNumber string              `json:"contactNumber" binding:"required"`
	Email         string              `json:"email" binding:"omitempty,email"`
	Description   string              `json:"description"`
	Amenities     []string            `json:"amenities"`
	Rules         json.RawMessage     `json:"rules"`
	Images        []string            `json:"images"`
	VendorID      string              `json:"vendorId"`
}

// AdminPropertyRequest lets the back office set the publication status in the same call.
type AdminPropertyRequest struct {
	PropertyRequest
	Status models.PropertyStatus `json:"status" binding:"omitempty,oneof=draft public"`
}

type PropertyStatusRequest struct {
	Status models.PropertyStatus `json:"status" binding:"required,oneof=draft public"`
}

// PropertyQuery is bound from the listing query string.
type PropertyQuery struct {
	PageQuery
	City   string `form:"city"`
	Type   string `form:"type"`
	Gender string `form:"gender"`
	Status string `form:"status"`
	Vendor string `form:"vendorId"`
}

// PropertySummary is the compact form embedded in booking responses.
type PropertySummary struct {
	ID         string `json:"_id"`
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Area       string `json:"area"`
}
