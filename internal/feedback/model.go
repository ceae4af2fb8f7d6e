package feedback

import "time"

type Feedback struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	AppointmentNumber string    `bson:"appointmentNumber,omitempty" json:"appointmentNumber,omitempty"`
	Rating            int       `bson:"rating" json:"rating"`
	Message           string    `bson:"message" json:"message"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

type CreateRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"omitempty,phone"`
	AppointmentNumber string `json:"appointmentNumber" validate:"omitempty,len=6,numeric"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	Message           string `json:"message" validate:"required"`
}
