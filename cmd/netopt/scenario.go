package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cdst-net/netopt/netmodel"
)

// scenarioFile is the YAML-facing shape of a fixture scenario; it mirrors
// netmodel.RunInput field-for-field but uses YAML-friendly tags and a
// flattened operational-hours representation (weekday name -> window).
type scenarioFile struct {
	ScenarioID   string                    `yaml:"scenario_id"`
	Laboratories []laboratoryFile          `yaml:"laboratories"`
	ServiceAreas []serviceAreaFile         `yaml:"service_areas"`
	TestDemands  []testDemandFile          `yaml:"test_demands"`
	Weights      netmodel.Weights          `yaml:"weights"`
	Constraints  constraintsFile           `yaml:"constraints"`
	Algorithm    algorithmFile             `yaml:"algorithm"`
}

type laboratoryFile struct {
	ID                string                    `yaml:"id"`
	Lat               float64                   `yaml:"lat"`
	Lon               float64                   `yaml:"lon"`
	MaxTestsPerDay    int                       `yaml:"max_tests_per_day"`
	MaxTestsPerMonth  int                       `yaml:"max_tests_per_month"`
	StaffCount        int                       `yaml:"staff_count"`
	EquipmentCount    int                       `yaml:"equipment_count"`
	UtilizationFactor float64                   `yaml:"utilization_factor"`
	TestTypes         map[string]capabilityFile `yaml:"test_types"`
	OperationalHours  map[string]windowFile     `yaml:"operational_hours"`
}

type capabilityFile struct {
	Available            bool    `yaml:"available"`
	MinutesPerTest       float64 `yaml:"minutes_per_test"`
	StaffRequired        int     `yaml:"staff_required"`
	EquipmentUtilization float64 `yaml:"equipment_utilization"`
	CostPerTest          float64 `yaml:"cost_per_test"`
	QualityScore         float64 `yaml:"quality_score"`
}

type windowFile struct {
	OpenMinute  int `yaml:"open_minute"`
	CloseMinute int `yaml:"close_minute"`
}

type serviceAreaFile struct {
	ID                 string  `yaml:"id"`
	Lat                float64 `yaml:"lat"`
	Lon                float64 `yaml:"lon"`
	Population         int     `yaml:"population"`
	PriorityLevel      int     `yaml:"priority_level"`
	AccessibilityIndex float64 `yaml:"accessibility_index"`
}

type testDemandFile struct {
	AreaID         string  `yaml:"area_id"`
	TestType       string  `yaml:"test_type"`
	Count          int     `yaml:"count"`
	PriorityLevel  int     `yaml:"priority_level"`
	Urgency        string  `yaml:"urgency"`
	SeasonalFactor float64 `yaml:"seasonal_factor"`
	DemandDate     string  `yaml:"demand_date"`
}

type constraintsFile struct {
	MaxDistanceKM           float64 `yaml:"max_distance_km"`
	MaxTravelTimeMinutes    float64 `yaml:"max_travel_time_minutes"`
	MinUtilizationRate      float64 `yaml:"min_utilization_rate"`
	MaxUtilizationRate      float64 `yaml:"max_utilization_rate"`
	EnforceOperationalHours bool    `yaml:"enforce_operational_hours"`
	QualityThreshold        float64 `yaml:"quality_threshold"`
}

type algorithmFile struct {
	PopulationSize       int     `yaml:"population_size"`
	MaxGenerations       int     `yaml:"max_generations"`
	CrossoverRate        float64 `yaml:"crossover_rate"`
	MutationRate         float64 `yaml:"mutation_rate"`
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	Seed                 int64   `yaml:"seed"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// loadScenario reads and decodes a YAML scenario file into a netmodel.RunInput.
// Algorithm fields left at their zero value fall back to
// netmodel.DefaultAlgorithmParams.
func loadScenario(path string) (netmodel.RunInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return netmodel.RunInput{}, fmt.Errorf("reading scenario file: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return netmodel.RunInput{}, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	return file.toRunInput()
}

func (f scenarioFile) toRunInput() (netmodel.RunInput, error) {
	labs := make([]netmodel.Laboratory, len(f.Laboratories))
	for i, l := range f.Laboratories {
		testTypes := make(map[string]netmodel.TestCapability, len(l.TestTypes))
		for name, c := range l.TestTypes {
			testTypes[name] = netmodel.TestCapability{
				Available:            c.Available,
				MinutesPerTest:       c.MinutesPerTest,
				StaffRequired:        c.StaffRequired,
				EquipmentUtilization: c.EquipmentUtilization,
				CostPerTest:          c.CostPerTest,
				QualityScore:         c.QualityScore,
			}
		}
		var hours map[time.Weekday]netmodel.OperationalWindow
		if len(l.OperationalHours) > 0 {
			hours = make(map[time.Weekday]netmodel.OperationalWindow, len(l.OperationalHours))
			for name, w := range l.OperationalHours {
				day, ok := weekdayNames[name]
				if !ok {
					return netmodel.RunInput{}, fmt.Errorf("laboratory %q: unknown weekday %q", l.ID, name)
				}
				hours[day] = netmodel.OperationalWindow{OpenMinute: w.OpenMinute, CloseMinute: w.CloseMinute}
			}
		}
		labs[i] = netmodel.Laboratory{
			ID:                l.ID,
			Location:          netmodel.Coordinate{Lat: l.Lat, Lon: l.Lon},
			MaxTestsPerDay:    l.MaxTestsPerDay,
			MaxTestsPerMonth:  l.MaxTestsPerMonth,
			StaffCount:        l.StaffCount,
			EquipmentCount:    l.EquipmentCount,
			UtilizationFactor: l.UtilizationFactor,
			TestTypes:         testTypes,
			OperationalHours:  hours,
		}
	}

	areas := make([]netmodel.ServiceArea, len(f.ServiceAreas))
	for i, a := range f.ServiceAreas {
		areas[i] = netmodel.ServiceArea{
			ID:                 a.ID,
			Location:           netmodel.Coordinate{Lat: a.Lat, Lon: a.Lon},
			Population:         a.Population,
			PriorityLevel:      a.PriorityLevel,
			AccessibilityIndex: a.AccessibilityIndex,
		}
	}

	demands := make([]netmodel.TestDemand, len(f.TestDemands))
	for i, d := range f.TestDemands {
		var demandDate time.Time
		if d.DemandDate != "" {
			parsed, err := time.Parse("2006-01-02", d.DemandDate)
			if err != nil {
				return netmodel.RunInput{}, fmt.Errorf("test demand %d: invalid demand_date %q: %w", i, d.DemandDate, err)
			}
			demandDate = parsed
		}
		demands[i] = netmodel.TestDemand{
			AreaID:         d.AreaID,
			TestType:       d.TestType,
			Count:          d.Count,
			PriorityLevel:  d.PriorityLevel,
			Urgency:        d.Urgency,
			SeasonalFactor: d.SeasonalFactor,
			DemandDate:     demandDate,
		}
	}

	algo := netmodel.DefaultAlgorithmParams()
	if f.Algorithm.PopulationSize > 0 {
		algo.PopulationSize = f.Algorithm.PopulationSize
	}
	if f.Algorithm.MaxGenerations > 0 {
		algo.MaxGenerations = f.Algorithm.MaxGenerations
	}
	if f.Algorithm.CrossoverRate > 0 {
		algo.CrossoverRate = f.Algorithm.CrossoverRate
	}
	if f.Algorithm.MutationRate > 0 {
		algo.MutationRate = f.Algorithm.MutationRate
	}
	if f.Algorithm.ConvergenceThreshold > 0 {
		algo.ConvergenceThreshold = f.Algorithm.ConvergenceThreshold
	}
	if f.Algorithm.Seed != 0 {
		algo.Seed = f.Algorithm.Seed
	}

	return netmodel.RunInput{
		Laboratories: labs,
		ServiceAreas: areas,
		TestDemands:  demands,
		Weights:      f.Weights,
		Constraints: netmodel.Constraints{
			MaxDistanceKM:           f.Constraints.MaxDistanceKM,
			MaxTravelTimeMinutes:    f.Constraints.MaxTravelTimeMinutes,
			MinUtilizationRate:      f.Constraints.MinUtilizationRate,
			MaxUtilizationRate:      f.Constraints.MaxUtilizationRate,
			EnforceOperationalHours: f.Constraints.EnforceOperationalHours,
			QualityThreshold:        f.Constraints.QualityThreshold,
		},
		Algorithm:   algo,
		ScenarioID:  f.ScenarioID,
		RequestedAt: time.Now(),
	}, nil
}
