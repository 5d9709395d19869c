// scraper/refdata_parser.go
package scraper

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/rsfsync/models"
)

// ParseReferenceCars takes an io.Reader containing the cars.csv reference
// data and returns the decoded entries.
// csvutil maps the header line to struct fields via the `csv:"..."` tags
// in models.ReferenceCar, so headers must match those tags exactly.
func ParseReferenceCars(reader io.Reader) ([]models.ReferenceCar, error) {
	var cars []models.ReferenceCar

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for reference cars: %w", err)
	}
	if err := decoder.Decode(&cars); err != nil {
		return nil, fmt.Errorf("failed to decode reference car CSV data: %w", err)
	}
	return cars, nil
}

// ParseReferenceModels takes an io.Reader containing the models.csv
// reference data and returns the decoded model-group entries.
func ParseReferenceModels(reader io.Reader) ([]models.ReferenceModel, error) {
	var groups []models.ReferenceModel

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for reference models: %w", err)
	}
	if err := decoder.Decode(&groups); err != nil {
		return nil, fmt.Errorf("failed to decode reference model CSV data: %w", err)
	}
	return groups, nil
}
