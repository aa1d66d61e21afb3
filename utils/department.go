package authUtils

import (
	"strings"

	"citypulse-be/models"
)

// DepartmentCategoryMapping maps an admin's department to the issue
// categories under its jurisdiction. Loaded once, never mutated at runtime.
var DepartmentCategoryMapping = map[string][]models.IssueCategory{
	"Roads":       {models.Potholes, models.Streetlights, models.TrafficLights},
	"Water":       {models.BurstWaterPipes, models.SewerIssues},
	"Environment": {"Environmental Issues", "Waste Management"},
	"Main":        models.AllIssueCategories,
}

// CategoriesForDepartment returns the issue categories a department may act
// on. Lookup is case-insensitive. "Main" and "Admin" get the full set.
// Unknown or empty departments get an empty set so that an admin with no
// mapped department sees no issues rather than all of them.
func CategoriesForDepartment(department string) []models.IssueCategory {
	if department == "" {
		return nil
	}

	lower := strings.ToLower(department)
	if lower == "main" || lower == "admin" {
		return DepartmentCategoryMapping["Main"]
	}

	for key, categories := range DepartmentCategoryMapping {
		if strings.ToLower(key) == lower {
			return categories
		}
	}
	return nil
}
