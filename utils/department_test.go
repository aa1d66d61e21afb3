package authUtils

import (
	"testing"

	"citypulse-be/models"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesForDepartment(t *testing.T) {
	roads := []models.IssueCategory{models.Potholes, models.Streetlights, models.TrafficLights}
	water := []models.IssueCategory{models.BurstWaterPipes, models.SewerIssues}

	tests := []struct {
		name       string
		department string
		want       []models.IssueCategory
	}{
		{"roads exact case", "Roads", roads},
		{"roads lower case", "roads", roads},
		{"roads upper case", "ROADS", roads},
		{"water mixed case", "wAtEr", water},
		{"main gets full set", "Main", models.AllIssueCategories},
		{"admin alias gets full set", "Admin", models.AllIssueCategories},
		{"admin alias lower case", "admin", models.AllIssueCategories},
		{"unknown department is empty", "Unknown", nil},
		{"empty department is empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoriesForDepartment(tt.department)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestCategoriesForDepartmentFailClosed(t *testing.T) {
	// An admin with no mapped department must see nothing, not everything
	assert.Empty(t, CategoriesForDepartment("Finance"))
	assert.Empty(t, CategoriesForDepartment(" "))
}

func TestMainMappingCoversAllCategories(t *testing.T) {
	got := CategoriesForDepartment("main")
	assert.Len(t, got, 6)
	for _, category := range models.AllIssueCategories {
		assert.Contains(t, got, category)
	}
}
