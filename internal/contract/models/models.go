package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	dErrors "realty/pkg/domain-errors"
)

// Party is the seller or the buyer.
type Party struct {
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
	MaritalStatus string `json:"maritalStatus"`
	Address       string `json:"address"`
	Document      string `json:"document"`
}

// Bank is the financing institution.
type Bank struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	CNPJ    string `json:"cnpj"`
}

// Property describes the unit being sold. Areas are in square meters.
type Property struct {
	Address        string  `json:"address"`
	RegistryNumber string  `json:"registryNumber"`
	Area           float64 `json:"area"`
	ParkingSpaces  int     `json:"parkingSpaces"`
	PrivateArea    float64 `json:"privateArea"`
	CommonArea     float64 `json:"commonArea"`
	TotalArea      float64 `json:"totalArea"`
	IdealFraction  string  `json:"idealFraction"`
}

// Payment holds the price breakdown.
type Payment struct {
	TotalPrice   float64 `json:"totalPrice"`
	DownPayment  float64 `json:"downPayment"`
	FGTSValue    float64 `json:"fgtsValue"`
	Installments int     `json:"installments"`
}

type Witness struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

type Witnesses struct {
	Witness1 Witness `json:"witness1"`
	Witness2 Witness `json:"witness2"`
}

// RealEstateContract is the nested contract as submitted by callers.
// It is persisted once and never updated.
type RealEstateContract struct {
	BuildingName    string    `json:"buildingName"`
	ApartmentNumber string    `json:"apartmentNumber"`
	Seller          Party     `json:"seller"`
	Buyer           Party     `json:"buyer"`
	Bank            Bank      `json:"bank"`
	Property        Property  `json:"property"`
	Payment         Payment   `json:"payment"`
	Date            string    `json:"date"`
	Witnesses       Witnesses `json:"witnesses"`
}

// StoredContract is a contract read back from the store.
type StoredContract struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RealEstateContract
}

// SaveResult reports the outcome of an insert.
type SaveResult struct {
	ID           int64 `json:"id"`
	RowsAffected int64 `json:"rowsAffected"`
}

// Normalize trims surrounding whitespace from the required text fields.
func (c *RealEstateContract) Normalize() {
	for _, p := range []*string{
		&c.BuildingName, &c.ApartmentNumber, &c.Seller.Name, &c.Buyer.Name,
		&c.Property.Address, &c.Date,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// Validate enforces the columns declared NOT NULL and the numeric ranges.
func (c *RealEstateContract) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"buildingName", c.BuildingName},
		{"apartmentNumber", c.ApartmentNumber},
		{"seller.name", c.Seller.Name},
		{"buyer.name", c.Buyer.Name},
		{"property.address", c.Property.Address},
		{"date", c.Date},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return dErrors.New(dErrors.CodeValidation, r.field+" is required")
		}
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"property.area", c.Property.Area},
		{"property.privateArea", c.Property.PrivateArea},
		{"property.commonArea", c.Property.CommonArea},
		{"property.totalArea", c.Property.TotalArea},
		{"payment.totalPrice", c.Payment.TotalPrice},
		{"payment.downPayment", c.Payment.DownPayment},
		{"payment.fgtsValue", c.Payment.FGTSValue},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) || a.value < 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a non-negative number", a.field))
		}
	}

	if c.Property.ParkingSpaces < 0 {
		return dErrors.New(dErrors.CodeValidation, "property.parkingSpaces must be a non-negative integer")
	}
	if c.Payment.Installments < 0 {
		return dErrors.New(dErrors.CodeValidation, "payment.installments must be a non-negative integer")
	}
	return nil
}
