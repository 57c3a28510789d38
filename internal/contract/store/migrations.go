package store

import (
	"gorm.io/gorm"

	"realty/internal/platform/database"
)

const createContractsTable = `
CREATE TABLE IF NOT EXISTS contracts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	buildingName TEXT NOT NULL,
	apartmentNumber TEXT NOT NULL,
	sellerName TEXT NOT NULL,
	sellerNationality TEXT,
	sellerMaritalStatus TEXT,
	sellerAddress TEXT,
	sellerDocument TEXT,
	buyerName TEXT NOT NULL,
	buyerNationality TEXT,
	buyerMaritalStatus TEXT,
	buyerAddress TEXT,
	buyerDocument TEXT,
	bankName TEXT,
	bankAddress TEXT,
	bankCnpj TEXT,
	propertyAddress TEXT NOT NULL,
	registryNumber TEXT,
	area REAL,
	parkingSpaces INTEGER,
	privateArea REAL,
	commonArea REAL,
	totalArea REAL,
	idealFraction TEXT,
	totalPrice REAL NOT NULL,
	downPayment REAL,
	fgtsValue REAL,
	installments INTEGER,
	contractDate TEXT NOT NULL,
	witness1Name TEXT,
	witness1Cpf TEXT,
	witness2Name TEXT,
	witness2Cpf TEXT,
	createdAt DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Migrations returns the schema history of the contract store.
func Migrations() []database.Migration {
	return []database.Migration{
		{
			Version: "20240101000001",
			Name:    "create_contracts",
			Up:      func(tx *gorm.DB) error { return tx.Exec(createContractsTable).Error },
			Down:    func(tx *gorm.DB) error { return tx.Exec(`DROP TABLE IF EXISTS contracts`).Error },
		},
	}
}
