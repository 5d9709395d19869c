// services/resolver.go
package services

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gewnthar/rsfsync/database"
	"github.com/gewnthar/rsfsync/models"
)

// ResolveStage maps a scraped row to a D_Map surrogate key, creating the
// stage when it does not exist yet. An existing stage whose remote id is
// still 0 gets a one-time backfill of id, surface and length from the row;
// a stage already populated from another source is left untouched.
func ResolveStage(tx *sql.Tx, row models.ResultRow) (int64, error) {
	stage, err := database.FindStageByName(tx, row.StageName)
	if err != nil {
		return 0, err
	}

	if stage != nil {
		if stage.StageID == 0 && row.StageID != 0 {
			if err := database.BackfillStage(tx, stage.MapKey, row.StageID, row.Surface, row.Length); err != nil {
				return 0, err
			}
		}
		return stage.MapKey, nil
	}

	key, err := database.InsertStage(tx, models.Stage{
		StageID: row.StageID,
		Name:    row.StageName,
		Surface: row.Surface,
		Length:  row.Length,
		Format:  models.StageFormat,
		Plugin:  models.PluginType,
	})
	if err != nil {
		return 0, err
	}
	log.Printf("Service: Created new stage '%s' (MapKey %d).\n", row.StageName, key)
	return key, nil
}

// ResolveCar maps a scraped row to a D_Car surrogate key. Existing cars
// are returned as-is; a new car is enriched from the reference data when
// available and from sentinel defaults otherwise, with the synced group
// name recorded as its class.
func ResolveCar(tx *sql.Tx, row models.ResultRow, groupName string, ref *ReferenceData) (int64, error) {
	car, err := database.FindCarByName(tx, row.CarName)
	if err != nil {
		return 0, err
	}
	if car != nil {
		return car.CarKey, nil
	}

	newCar := models.Car{
		CarID:      models.UnknownCarID,
		ModelName:  row.CarName,
		CarClass:   groupName,
		Physics:    models.UnknownPhysics,
		Folder:     firstToken(row.CarName),
		NGPVersion: models.NGPVersionTag,
	}
	if refCar, ok := ref.CarByModel(row.CarName); ok {
		newCar.CarID = refCar.CarID
		newCar.Physics = refCar.Physics
		newCar.Revision = refCar.Revision
		if refModel, ok := ref.ModelByGroup(refCar.ModelGroup); ok {
			newCar.Folder = refModel.Folder
		}
	}

	key, err := database.InsertCar(tx, newCar)
	if err != nil {
		return 0, err
	}
	log.Printf("Service: Created new car '%s' (CarKey %d, class %s).\n", row.CarName, key, groupName)
	return key, nil
}

// firstToken is the folder-name fallback for cars with no reference entry:
// the first whitespace-delimited word of the model name.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
