package dto

import "stayhub/models"

type RoomRequest struct {
	RoomNumber   string  `json:"roomNumber" binding:"omitempty,max=20"`
	NoOfSharing  int     `json:"noOfSharing" binding:"required,min=1,max=7"`
	ACType       string  `json:"acType" binding:"required,oneof='AC' 'Non AC'"`
	BedSize      string  `json:"bedSize" binding:"required,oneof=Single Double Other"`
	Rent         float64 `json:"rent" binding:"required,gt=0"`
	BathroomType string  `json:"bathroomType"`
	TotalBeds    int     `json:"totalBeds" binding:"required,min=1"`
}

func (r RoomRequest) Spec() models.RoomSpec {
	return models.RoomSpec{
		RoomNumber:   r.RoomNumber,
		NoOfSharing:  r.NoOfSharing,
		ACType:       r.ACType,
		BedSize:      r.BedSize,
		Rent:         r.Rent,
		BathroomType: r.BathroomType,
		TotalBeds:    r.TotalBeds,
	}
}

// BedStatusRequest là body của PATCH .../beds/:roomId/:bedId
type BedStatusRequest struct {
	Status models.BedStatus `json:"status" binding:"required,oneof=available maintenance notice"`
}

// RoomResponse trả về phòng kèm thông tin property cha
type RoomResponse struct {
	models.Room
	Parents Parents `json:"parents"`
}

// Parents là DTO cho thông tin cha của room
type Parents struct {
	ID         string `json:"_id"`
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
}
