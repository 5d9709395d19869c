// models/reference.go
package models

// ReferenceCar is one entry of the optional cars.csv reference file,
// keyed by ModelName. It enriches newly created D_Car rows; when the file
// is missing the resolver falls back to sentinel defaults instead.
// CSV tags must EXACTLY match the file headers.
type ReferenceCar struct {
	ModelName  string `csv:"ModelName"`
	CarID      int    `csv:"CarID"`
	Physics    string `csv:"Physics"`
	ModelGroup string `csv:"ModelGroup"` // Key into models.csv, may be empty
	Revision   string `csv:"Revision"`
}

// ReferenceModel is one entry of the optional models.csv reference file,
// keyed by the numeric model-group id. Supplies the installed folder name
// for a whole model family.
type ReferenceModel struct {
	ModelGroup string `csv:"ModelGroup"`
	Folder     string `csv:"Folder"`
}
