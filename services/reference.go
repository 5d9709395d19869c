// services/reference.go
package services

import (
	"log"
	"os"

	"github.com/gewnthar/rsfsync/models"
	"github.com/gewnthar/rsfsync/scraper"
)

// ReferenceData is the read-only enrichment source consulted when a new
// D_Car row has to be created. Both lookups report misses via the ok
// return; a miss is never an error, the resolver falls back to sentinels.
type ReferenceData struct {
	carsByModel   map[string]models.ReferenceCar
	modelsByGroup map[string]models.ReferenceModel
}

// EmptyReferenceData returns a ReferenceData where every lookup misses.
func EmptyReferenceData() *ReferenceData {
	return &ReferenceData{
		carsByModel:   map[string]models.ReferenceCar{},
		modelsByGroup: map[string]models.ReferenceModel{},
	}
}

// NewReferenceData builds the lookup tables from already-decoded entries.
func NewReferenceData(cars []models.ReferenceCar, groups []models.ReferenceModel) *ReferenceData {
	ref := EmptyReferenceData()
	for _, c := range cars {
		ref.carsByModel[c.ModelName] = c
	}
	for _, g := range groups {
		ref.modelsByGroup[g.ModelGroup] = g
	}
	return ref
}

// LoadReferenceData reads the optional cars.csv / models.csv files. A
// missing or unreadable file degrades to an empty lookup - newly created
// cars then carry sentinel defaults - and never fails the caller.
func LoadReferenceData(carsPath, modelsPath string) *ReferenceData {
	var cars []models.ReferenceCar
	var groups []models.ReferenceModel

	if carsPath != "" {
		if f, err := os.Open(carsPath); err != nil {
			log.Printf("Service: Reference car file not available (%v), using sentinel defaults.\n", err)
		} else {
			cars, err = scraper.ParseReferenceCars(f)
			f.Close()
			if err != nil {
				log.Printf("Service: Failed to parse %s: %v. Using sentinel defaults.\n", carsPath, err)
				cars = nil
			}
		}
	}

	if modelsPath != "" {
		if f, err := os.Open(modelsPath); err != nil {
			log.Printf("Service: Reference model file not available (%v), using sentinel defaults.\n", err)
		} else {
			groups, err = scraper.ParseReferenceModels(f)
			f.Close()
			if err != nil {
				log.Printf("Service: Failed to parse %s: %v. Using sentinel defaults.\n", modelsPath, err)
				groups = nil
			}
		}
	}

	log.Printf("Service: Loaded %d reference cars and %d reference model groups.\n", len(cars), len(groups))
	return NewReferenceData(cars, groups)
}

// CarByModel returns the reference entry for a car model name.
func (r *ReferenceData) CarByModel(modelName string) (models.ReferenceCar, bool) {
	c, ok := r.carsByModel[modelName]
	return c, ok
}

// ModelByGroup returns the reference entry for a model-group id.
func (r *ReferenceData) ModelByGroup(groupID string) (models.ReferenceModel, bool) {
	g, ok := r.modelsByGroup[groupID]
	return g, ok
}
