package domain

import "errors"

var ErrVehicleNotFound = errors.New("vehicle not found")

// ExtraInfo holds the secondary specification of a vehicle.
type ExtraInfo struct {
	Transmission  string `json:"transmission" bson:"transmission"`
	NumberOfDoors int    `json:"number_of_doors" bson:"number_of_doors"`
	Type          string `json:"type" bson:"type"`
}

// Vehicle is a listing record. Records are imported once and never modified afterwards.
type Vehicle struct {
	ID          int       `json:"id" bson:"id"`
	Brand       string    `json:"brand" bson:"brand"`
	Model       string    `json:"model" bson:"model"`
	Year        int       `json:"year" bson:"year"`
	Price       float64   `json:"price" bson:"price"`
	Active      bool      `json:"active" bson:"active"`
	Fuel        string    `json:"fuel" bson:"fuel"`
	Color       string    `json:"color" bson:"color"`
	Image       string    `json:"image" bson:"image"`
	Description string    `json:"description" bson:"description"`
	ExtraInfo   ExtraInfo `json:"extra_info" bson:"extra_info"`
}
