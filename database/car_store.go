// database/car_store.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/gewnthar/rsfsync/models"
)

// FindCarByName looks up a D_Car row by model name. Returns nil without
// error when the car is unknown.
func FindCarByName(tx *sql.Tx, modelName string) (*models.Car, error) {
	var c models.Car
	err := tx.QueryRow(
		"SELECT CarKey, CarID, ModelName, CarClass FROM D_Car WHERE ModelName = ?",
		modelName,
	).Scan(&c.CarKey, &c.CarID, &c.ModelName, &c.CarClass)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query D_Car for model '%s': %w", modelName, err)
	}
	return &c, nil
}

// InsertCar creates a new D_Car row and returns its surrogate key.
// Existing cars are never updated by the sync - identity fields are fixed
// at creation.
func InsertCar(tx *sql.Tx, c models.Car) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO D_Car (CarID, ModelName, CarClass, Physics, Folder, Revision, NGPVersion)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.CarID, c.ModelName, c.CarClass, c.Physics, c.Folder, c.Revision, c.NGPVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert car '%s' into D_Car: %w", c.ModelName, err)
	}
	key, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new CarKey for car '%s': %w", c.ModelName, err)
	}
	return key, nil
}
