package models

import "strings"

// Columns lists the contracts table columns in insert order.
var Columns = []string{
	"buildingName", "apartmentNumber",
	"sellerName", "sellerNationality", "sellerMaritalStatus", "sellerAddress", "sellerDocument",
	"buyerName", "buyerNationality", "buyerMaritalStatus", "buyerAddress", "buyerDocument",
	"bankName", "bankAddress", "bankCnpj",
	"propertyAddress", "registryNumber", "area", "parkingSpaces", "privateArea", "commonArea", "totalArea", "idealFraction",
	"totalPrice", "downPayment", "fgtsValue", "installments",
	"contractDate",
	"witness1Name", "witness1Cpf", "witness2Name", "witness2Cpf",
}

// InsertSQL is the single parameterized insert used by the store.
var InsertSQL = "INSERT INTO contracts (" + strings.Join(Columns, ", ") +
	") VALUES (" + strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ") + ")"

// Flatten maps the nested contract to positional values matching Columns.
func (c *RealEstateContract) Flatten() []any {
	return []any{
		c.BuildingName, c.ApartmentNumber,
		c.Seller.Name, c.Seller.Nationality, c.Seller.MaritalStatus, c.Seller.Address, c.Seller.Document,
		c.Buyer.Name, c.Buyer.Nationality, c.Buyer.MaritalStatus, c.Buyer.Address, c.Buyer.Document,
		c.Bank.Name, c.Bank.Address, c.Bank.CNPJ,
		c.Property.Address, c.Property.RegistryNumber, c.Property.Area, c.Property.ParkingSpaces,
		c.Property.PrivateArea, c.Property.CommonArea, c.Property.TotalArea, c.Property.IdealFraction,
		c.Payment.TotalPrice, c.Payment.DownPayment, c.Payment.FGTSValue, c.Payment.Installments,
		c.Date,
		c.Witnesses.Witness1.Name, c.Witnesses.Witness1.CPF, c.Witnesses.Witness2.Name, c.Witnesses.Witness2.CPF,
	}
}

// ScanTargets returns pointers matching Columns, for reading a row back.
func (c *RealEstateContract) ScanTargets() []any {
	return []any{
		&c.BuildingName, &c.ApartmentNumber,
		&c.Seller.Name, &c.Seller.Nationality, &c.Seller.MaritalStatus, &c.Seller.Address, &c.Seller.Document,
		&c.Buyer.Name, &c.Buyer.Nationality, &c.Buyer.MaritalStatus, &c.Buyer.Address, &c.Buyer.Document,
		&c.Bank.Name, &c.Bank.Address, &c.Bank.CNPJ,
		&c.Property.Address, &c.Property.RegistryNumber, &c.Property.Area, &c.Property.ParkingSpaces,
		&c.Property.PrivateArea, &c.Property.CommonArea, &c.Property.TotalArea, &c.Property.IdealFraction,
		&c.Payment.TotalPrice, &c.Payment.DownPayment, &c.Payment.FGTSValue, &c.Payment.Installments,
		&c.Date,
		&c.Witnesses.Witness1.Name, &c.Witnesses.Witness1.CPF, &c.Witnesses.Witness2.Name, &c.Witnesses.Witness2.CPF,
	}
}
