package models

// ServiceCategories is the closed set of categories taskers and services may use.
var ServiceCategories = []string{
	"Cleaning",
	"Plumbing",
	"Electrical",
	"Carpentry",
	"Painting",
	"Gardening",
	"Moving",
	"Appliance Repair",
	"Pest Control",
	"Handyman",
	"Other",
}

func IsServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}
