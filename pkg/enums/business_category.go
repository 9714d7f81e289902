package enums

import "fmt"

// BusinessCategory classifies an applicant's line of business.
type BusinessCategory string

const (
	BusinessCategoryRestaurant           BusinessCategory = "restaurant"
	BusinessCategoryHealthWellness       BusinessCategory = "health-wellness"
	BusinessCategoryRetail               BusinessCategory = "retail"
	BusinessCategoryProfessionalServices BusinessCategory = "professional-services"
	BusinessCategoryAutomotive           BusinessCategory = "automotive"
	BusinessCategoryHomeServices         BusinessCategory = "home-services"
	BusinessCategoryBeautySalon          BusinessCategory = "beauty-salon"
	BusinessCategoryEntertainment        BusinessCategory = "entertainment"
	BusinessCategoryPetServices          BusinessCategory = "pet-services"
	BusinessCategoryEducation            BusinessCategory = "education"
	BusinessCategoryOther                BusinessCategory = "other"
)

var validBusinessCategories = []BusinessCategory{
	BusinessCategoryRestaurant,
	BusinessCategoryHealthWellness,
	BusinessCategoryRetail,
	BusinessCategoryProfessionalServices,
	BusinessCategoryAutomotive,
	BusinessCategoryHomeServices,
	BusinessCategoryBeautySalon,
	BusinessCategoryEntertainment,
	BusinessCategoryPetServices,
	BusinessCategoryEducation,
	BusinessCategoryOther,
}

// String implements fmt.Stringer.
func (b BusinessCategory) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessCategory.
func (b BusinessCategory) IsValid() bool {
	for _, candidate := range validBusinessCategories {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessCategory converts raw input into a BusinessCategory.
func ParseBusinessCategory(value string) (BusinessCategory, error) {
	for _, candidate := range validBusinessCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business category %q", value)
}
