// Package location holds the static Philippine administrative
// subdivisions consumed by the checkout address form.
package location

import "sort"

// cities maps a region name to the cities/municipalities under it.
var cities = map[string][]string{
	"Metro Manila": {
		"Caloocan", "Makati", "Manila", "Marikina", "Muntinlupa",
		"Parañaque", "Pasay", "Pasig", "Quezon City", "Taguig", "Valenzuela",
	},
	"Central Luzon": {
		"Angeles", "Balanga", "Cabanatuan", "Malolos", "Olongapo", "San Fernando", "Tarlac City",
	},
	"CALABARZON": {
		"Antipolo", "Bacoor", "Batangas City", "Calamba", "Dasmariñas", "Imus", "Lipa", "Lucena", "Santa Rosa",
	},
	"Central Visayas": {
		"Cebu City", "Lapu-Lapu", "Mandaue", "Tagbilaran", "Talisay",
	},
	"Davao Region": {
		"Davao City", "Digos", "Panabo", "Tagum",
	},
}

// barangays maps a city to a representative set of its barangays.
var barangays = map[string][]string{
	"Manila":      {"Binondo", "Ermita", "Intramuros", "Malate", "Paco", "Sampaloc", "Tondo"},
	"Quezon City": {"Bagong Pag-asa", "Batasan Hills", "Commonwealth", "Diliman", "Kamuning", "Novaliches Proper"},
	"Makati":      {"Bel-Air", "Guadalupe Nuevo", "Poblacion", "San Lorenzo", "Urdaneta"},
	"Pasig":       {"Kapitolyo", "Ortigas Center", "San Antonio", "Ugong"},
	"Taguig":      {"Bagumbayan", "Fort Bonifacio", "Lower Bicutan", "Ususan"},
	"Angeles":     {"Balibago", "Malabanias", "Pampang", "Santo Rosario"},
	"Calamba":     {"Canlubang", "Halang", "Parian", "Real"},
	"Antipolo":    {"Dela Paz", "Mayamot", "San Roque", "Santa Cruz"},
	"Cebu City":   {"Apas", "Banilad", "Guadalupe", "Lahug", "Mabolo", "Talamban"},
	"Davao City":  {"Agdao", "Buhangin", "Matina Aplaya", "Poblacion District", "Talomo"},
}

// Regions returns the region names in alphabetical order.
func Regions() []string {
	regions := make([]string, 0, len(cities))
	for region := range cities {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// CitiesOf returns the cities of a region, or nil for an unknown region.
func CitiesOf(region string) []string {
	list, ok := cities[region]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// BarangaysOf returns the barangays of a city. Cities without a curated
// barangay list return nil; address validation then accepts free text.
func BarangaysOf(city string) []string {
	list, ok := barangays[city]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Valid reports whether the city belongs to the region and, when the
// city has a curated barangay list, whether the barangay belongs to the
// city. An empty barangay is only valid if the city has no curated list.
func Valid(region, city, barangay string) bool {
	if !contains(cities[region], city) {
		return false
	}
	curated, ok := barangays[city]
	if !ok {
		return true
	}
	return contains(curated, barangay)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
