package testutil

import (
	contractmodels "realty/internal/contract/models"
	participantmodels "realty/internal/participant/models"
)

// SampleContract returns a complete, valid contract. Each call returns a
// fresh value so tests may mutate it.
func SampleContract() *contractmodels.RealEstateContract {
	return &contractmodels.RealEstateContract{
		BuildingName:    "Edifício Aurora",
		ApartmentNumber: "1204",
		Seller: contractmodels.Party{
			Name:          "Carlos Mendes",
			Nationality:   "brasileiro",
			MaritalStatus: "casado",
			Address:       "Rua das Flores, 100, São Paulo/SP",
			Document:      "123.456.789-00",
		},
		Buyer: contractmodels.Party{
			Name:          "Beatriz Lima",
			Nationality:   "brasileira",
			MaritalStatus: "solteira",
			Address:       "Av. Paulista, 900, São Paulo/SP",
			Document:      "987.654.321-00",
		},
		Bank: contractmodels.Bank{
			Name:    "Caixa Econômica Federal",
			Address: "SBS Quadra 4, Brasília/DF",
			CNPJ:    "00.360.305/0001-04",
		},
		Property: contractmodels.Property{
			Address:        "Rua Augusta, 1500, apto 1204, São Paulo/SP",
			RegistryNumber: "M-45.678",
			Area:           85.5,
			ParkingSpaces:  2,
			PrivateArea:    72.3,
			CommonArea:     13.2,
			TotalArea:      85.5,
			IdealFraction:  "0,012345",
		},
		Payment: contractmodels.Payment{
			TotalPrice:   500000,
			DownPayment:  100000,
			FGTSValue:    25000,
			Installments: 360,
		},
		Date: "2024-03-15",
		Witnesses: contractmodels.Witnesses{
			Witness1: contractmodels.Witness{Name: "Daniela Souza", CPF: "111.222.333-44"},
			Witness2: contractmodels.Witness{Name: "Eduardo Rocha", CPF: "555.666.777-88"},
		},
	}
}

// SampleLawyer returns a complete lawyer registration.
func SampleLawyer() participantmodels.UserRecord {
	return participantmodels.UserRecord{
		UserType:     participantmodels.UserTypeLawyer,
		DocumentType: participantmodels.DocumentOAB,
		Name:         "Ana",
		CPF:          "123.456.789-09",
		RG:           "12.345.678-9",
		Address:      "Rua Direita, 10, São Paulo/SP",
		Phone:        "+55 11 99999-0000",
		Email:        "ana@example.com",
		OABNumber:    "12345",
		OABState:     "SP",
	}
}
