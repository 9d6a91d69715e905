// Package rebate groups and orders incentives returned by the rebate
// provider, and talks to the provider itself.
package rebate

import "github.com/myfriendben/screener/internal/domain"

// categoryOrder is the order buckets appear in a result.
var categoryOrder = []domain.CategoryType{
	domain.CategoryHVAC,
	domain.CategoryWaterHeater,
	domain.CategoryTransportation,
	domain.CategoryEfficiencyWeatherization,
}

var categoryNames = map[domain.CategoryType]string{
	domain.CategoryHVAC:                     "HVAC",
	domain.CategoryWaterHeater:              "Water Heater",
	domain.CategoryTransportation:           "Transportation",
	domain.CategoryEfficiencyWeatherization: "Efficiency and Weatherization",
}

// itemCategories maps provider item tags to the bucket they belong in.
// Tags missing from the table are ignored by the categorizer.
var itemCategories = map[string]domain.CategoryType{
	"air_to_water_heat_pump":          domain.CategoryHVAC,
	"ducted_heat_pump":                domain.CategoryHVAC,
	"ductless_heat_pump":              domain.CategoryHVAC,
	"geothermal_heating_installation": domain.CategoryHVAC,
	"other_heat_pump":                 domain.CategoryHVAC,
	"central_air_conditioner":         domain.CategoryHVAC,

	"heat_pump_water_heater": domain.CategoryWaterHeater,
	"solar_water_heater":     domain.CategoryWaterHeater,

	"new_electric_vehicle":     domain.CategoryTransportation,
	"used_electric_vehicle":    domain.CategoryTransportation,
	"electric_vehicle_charger": domain.CategoryTransportation,
	"ebike":                    domain.CategoryTransportation,

	"weatherization":             domain.CategoryEfficiencyWeatherization,
	"efficiency_rebates":         domain.CategoryEfficiencyWeatherization,
	"energy_audit":               domain.CategoryEfficiencyWeatherization,
	"attic_or_roof_insulation":   domain.CategoryEfficiencyWeatherization,
	"basement_insulation":        domain.CategoryEfficiencyWeatherization,
	"crawlspace_insulation":      domain.CategoryEfficiencyWeatherization,
	"wall_insulation":            domain.CategoryEfficiencyWeatherization,
	"other_insulation":           domain.CategoryEfficiencyWeatherization,
	"air_sealing":                domain.CategoryEfficiencyWeatherization,
	"duct_sealing":               domain.CategoryEfficiencyWeatherization,
	"door_replacement":           domain.CategoryEfficiencyWeatherization,
	"window_replacement":         domain.CategoryEfficiencyWeatherization,
	"electric_panel":             domain.CategoryEfficiencyWeatherization,
	"electric_wiring":            domain.CategoryEfficiencyWeatherization,
	"electric_stove":             domain.CategoryEfficiencyWeatherization,
	"heat_pump_clothes_dryer":    domain.CategoryEfficiencyWeatherization,
	"electric_outdoor_equipment": domain.CategoryEfficiencyWeatherization,
}

// Equipment classes rank HVAC incentives; lower sorts first.
const (
	equipAirSource = iota
	equipGroundSource
	equipOtherHeatPump
	equipCentralAir
	equipUnclassified
)

var equipmentClasses = map[string]int{
	"ducted_heat_pump":                equipAirSource,
	"ductless_heat_pump":              equipAirSource,
	"air_to_water_heat_pump":          equipAirSource,
	"geothermal_heating_installation": equipGroundSource,
	"other_heat_pump":                 equipOtherHeatPump,
	"central_air_conditioner":         equipCentralAir,
}

// equipmentClass is the best class among an incentive's items.
func equipmentClass(items []string) int {
	best := equipUnclassified
	for _, it := range items {
		if c, ok := equipmentClasses[it]; ok && c < best {
			best = c
		}
	}
	return best
}

// CategoryName returns the display name of t.
func CategoryName(t domain.CategoryType) string {
	return categoryNames[t]
}
