package appointments

import "time"

type Appointment struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	AppointmentNumber string    `bson:"appointmentNumber" json:"appointmentNumber"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone             string    `bson:"phone" json:"phone"`
	Country           string    `bson:"country" json:"country"`
	State             string    `bson:"state" json:"state"`
	District          string    `bson:"district" json:"district"`
	Area              string    `bson:"area" json:"area"`
	DoctorID          int       `bson:"doctorId" json:"doctorId"`
	DoctorName        string    `bson:"doctorName" json:"doctorName"`
	Specialty         string    `bson:"specialty" json:"specialty"`
	Clinic            string    `bson:"clinic" json:"clinic"`
	Date              string    `bson:"date" json:"date"`
	Time              string    `bson:"time" json:"time"`
	Reason            string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Fee               int       `bson:"fee" json:"fee"`
	WaitTime          int       `bson:"waitTime" json:"waitTime"`
	Emergency         bool      `bson:"emergency" json:"emergency"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

type CreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Country  string `json:"country"`
	State    string `json:"state" validate:"required"`
	District string `json:"district" validate:"required"`
	Area     string `json:"area" validate:"required"`
	DoctorID int    `json:"doctorId" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,date"`
	Time     string `json:"time" validate:"required,clock12"`
	Reason   string `json:"reason"`
}

type EmergencyRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Country  string `json:"country"`
	State    string `json:"state" validate:"required"`
	District string `json:"district" validate:"required"`
	Area     string `json:"area" validate:"required"`
	DoctorID int    `json:"doctorId" validate:"required,gt=0"`
	Time     string `json:"time" validate:"required,clock12"`
	Reason   string `json:"reason" validate:"required"`
}

type LookupRequest struct {
	Phone             string `json:"phone" validate:"required,phone"`
	AppointmentNumber string `json:"appointmentNumber" validate:"required,len=6,numeric"`
}
