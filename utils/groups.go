// utils/groups.go
package utils

import "github.com/gewnthar/rsfsync/models"

// DefaultGroups maps the RSF website group ids to readable car class
// names, in the order they are synced. Overridable from config.yaml.
var DefaultGroups = []models.CarGroup{
	{ID: "71", Name: "Super 1600"},
	{ID: "125", Name: "Rally 2"},
	{ID: "31", Name: "Group B"},
	{ID: "30", Name: "Group A8"},
	{ID: "10", Name: "WRC 1.6"},
	{ID: "32", Name: "Group N4"},
	{ID: "21", Name: "Group 2"},
	{ID: "22", Name: "Group 4"},
	{ID: "23", Name: "Group A5"},
	{ID: "78", Name: "Group A6"},
	{ID: "24", Name: "Group A7"},
	{ID: "33", Name: "Group R1"},
	{ID: "34", Name: "Group R2"},
	{ID: "35", Name: "Group R3"},
	{ID: "36", Name: "Group R4"},
	{ID: "37", Name: "Group R5"},
	{ID: "38", Name: "Group RGT"},
	{ID: "111", Name: "Super 2000"},
	{ID: "118", Name: "Rally 5"},
	{ID: "104", Name: "Rally 4"},
	{ID: "108", Name: "Rally 3"},
}
