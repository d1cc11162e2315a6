// Package modelio loads a *model.Model from its two equally-weighted
// on-disk surface syntaxes, JSON and YAML, both decoding into the same
// tagged-variant Document shape before being resolved into live model
// pointers. Unknown fields are rejected on the JSON path the way the
// original deny_unknown_fields contract requires; the YAML path inherits
// gopkg.in/yaml.v2's own strict-key behavior.
package modelio

// Document is the on-disk shape of a Model: flat, name-keyed lists of each
// entity kind, cross-referencing each other by name rather than by
// pointer. Resolve turns this into a live *model.Model.
type Document struct {
	Meta  MetaDoc  `json:"meta" yaml:"meta"`
	Solar SolarDoc `json:"solar" yaml:"solar"`
	Site  SiteDoc  `json:"site" yaml:"site"`

	Substances    []SubstanceDoc    `json:"substances" yaml:"substances"`
	Materials     []MaterialDoc     `json:"materials" yaml:"materials"`
	Constructions []ConstructionDoc `json:"constructions" yaml:"constructions"`
	Surfaces      []SurfaceDoc      `json:"surfaces" yaml:"surfaces"`
	Fenestrations []FenestrationDoc `json:"fenestrations" yaml:"fenestrations"`
	Spaces        []SpaceDoc        `json:"spaces" yaml:"spaces"`
	Buildings     []BuildingDoc     `json:"buildings" yaml:"buildings"`
	HVACs         []HVACDoc         `json:"hvacs" yaml:"hvacs"`
	Luminaires    []LuminaireDoc    `json:"luminaires" yaml:"luminaires"`
	Outputs       []OutputDoc       `json:"outputs" yaml:"outputs"`
}

// MetaDoc mirrors model.MetaOptions; angles are given in degrees on disk
// and converted to radians during resolution, the conventional unit a
// model author reaches for over radians.
type MetaDoc struct {
	LatitudeDeg         float64 `json:"latitude_deg" yaml:"latitude_deg"`
	LongitudeDeg        float64 `json:"longitude_deg" yaml:"longitude_deg"`
	StandardMeridianDeg float64 `json:"standard_meridian_deg" yaml:"standard_meridian_deg"`
	Elevation           float64 `json:"elevation" yaml:"elevation"`
}

// SolarDoc mirrors model.SolarOptions. Zero-valued fields are overwritten
// with model.DefaultSolarOptions() defaults during resolution.
type SolarDoc struct {
	NSolarIrradiancePoints int     `json:"n_solar_irradiance_points" yaml:"n_solar_irradiance_points"`
	NAmbientSamples        int     `json:"n_ambient_samples" yaml:"n_ambient_samples"`
	SkyDiscretization      int     `json:"sky_discretization" yaml:"sky_discretization"`
	MaxDepth               int     `json:"max_depth" yaml:"max_depth"`
	LimitWeight            float64 `json:"limit_weight" yaml:"limit_weight"`
	OpticalDataPath        string  `json:"optical_data_path" yaml:"optical_data_path"`
}

// SiteDoc mirrors weather.SiteDetails, again in degrees on disk.
type SiteDoc struct {
	Altitude            float64 `json:"altitude" yaml:"altitude"`
	Terrain             string  `json:"terrain" yaml:"terrain"`
	LatitudeDeg         float64 `json:"latitude_deg" yaml:"latitude_deg"`
	LongitudeDeg        float64 `json:"longitude_deg" yaml:"longitude_deg"`
	StandardMeridianDeg float64 `json:"standard_meridian_deg" yaml:"standard_meridian_deg"`
}

// OpticalDoc mirrors model.OpticalProperties.
type OpticalDoc struct {
	FrontSolarAbsorptance  float64 `json:"front_solar_absorptance" yaml:"front_solar_absorptance"`
	BackSolarAbsorptance   float64 `json:"back_solar_absorptance" yaml:"back_solar_absorptance"`
	SolarTransmittance     float64 `json:"solar_transmittance" yaml:"solar_transmittance"`
	FrontVisibleReflectance float64 `json:"front_visible_reflectance" yaml:"front_visible_reflectance"`
	BackVisibleReflectance  float64 `json:"back_visible_reflectance" yaml:"back_visible_reflectance"`
	VisibleTransmissivity   float64 `json:"visible_transmissivity" yaml:"visible_transmissivity"`
	FrontThermalAbsorptance float64 `json:"front_thermal_absorptance" yaml:"front_thermal_absorptance"`
	BackThermalAbsorptance  float64 `json:"back_thermal_absorptance" yaml:"back_thermal_absorptance"`
}

// SubstanceDoc discriminates Normal/Gas via Type, matching the
// type-tagged-variant convention the format section requires.
type SubstanceDoc struct {
	Name         string      `json:"name" yaml:"name"`
	Type         string      `json:"type" yaml:"type"` // "Normal" | "Gas"
	Conductivity float64     `json:"conductivity" yaml:"conductivity"`
	SpecificHeat float64     `json:"specific_heat" yaml:"specific_heat"`
	Density      float64     `json:"density" yaml:"density"`
	Optical      *OpticalDoc `json:"optical" yaml:"optical"`
	Gas          string      `json:"gas" yaml:"gas"` // "Air" | "Argon" | "Krypton" | "Xenon"
}

type MaterialDoc struct {
	Name      string  `json:"name" yaml:"name"`
	Substance string  `json:"substance" yaml:"substance"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

type ConstructionDoc struct {
	Name      string   `json:"name" yaml:"name"`
	Materials []string `json:"materials" yaml:"materials"`
}

// BoundaryDoc discriminates Outdoor/Ground/Space/AmbientTemperature/
// Adiabatic via Type.
type BoundaryDoc struct {
	Type               string  `json:"type" yaml:"type"`
	Space              string  `json:"space" yaml:"space"`
	AmbientTemperature float64 `json:"ambient_temperature" yaml:"ambient_temperature"`
}

type SurfaceDoc struct {
	Name         string      `json:"name" yaml:"name"`
	Vertices     [][3]float64 `json:"vertices" yaml:"vertices"`
	Construction string      `json:"construction" yaml:"construction"`
	Front        BoundaryDoc `json:"front" yaml:"front"`
	Back         BoundaryDoc `json:"back" yaml:"back"`
	SurfaceType  string      `json:"surface_type" yaml:"surface_type"` // "Wall" | "Roof" | "Floor" | "Ceiling" | ""
}

type FenestrationDoc struct {
	SurfaceDoc `yaml:",inline"`
	Operation  string `json:"operation" yaml:"operation"` // "Fixed" | "Continuous" | "Binary"
	Parent     string `json:"parent" yaml:"parent"`
}

// InfiltrationDoc discriminates Constant/Blast/Doe2/DesignFlowRate/
// EffectiveLeakageArea via Type.
type InfiltrationDoc struct {
	Type   string  `json:"type" yaml:"type"`
	Flow   float64 `json:"flow" yaml:"flow"`
	A      float64 `json:"a" yaml:"a"`
	B      float64 `json:"b" yaml:"b"`
	C      float64 `json:"c" yaml:"c"`
	D      float64 `json:"d" yaml:"d"`
	Phi    float64 `json:"phi" yaml:"phi"`
	AreaM2 float64 `json:"area_m2" yaml:"area_m2"`
}

type SpaceDoc struct {
	Name         string           `json:"name" yaml:"name"`
	Volume       float64          `json:"volume" yaml:"volume"`
	Infiltration *InfiltrationDoc `json:"infiltration" yaml:"infiltration"`
	Storey       *int             `json:"storey" yaml:"storey"`
	PurposeTags  []string         `json:"purpose_tags" yaml:"purpose_tags"`
}

type BuildingDoc struct {
	Name             string   `json:"name" yaml:"name"`
	NStoreys         *int     `json:"n_storeys" yaml:"n_storeys"`
	Shelter          string   `json:"shelter" yaml:"shelter"` // "NoObstructions" | "IsolatedRural" | "Urban" | "LargeLotUrban" | "SmallLotUrban"
	StackCoefficient *float64 `json:"stack_coefficient" yaml:"stack_coefficient"`
	WindCoefficient  *float64 `json:"wind_coefficient" yaml:"wind_coefficient"`
	Spaces           []string `json:"spaces" yaml:"spaces"`
}

type HVACDoc struct {
	Name            string  `json:"name" yaml:"name"`
	Type            string  `json:"type" yaml:"type"` // "IdealHeaterCooler" | "ElectricHeater"
	Target          string  `json:"target" yaml:"target"`
	HeatingSetpoint float64 `json:"heating_setpoint" yaml:"heating_setpoint"`
	CoolingSetpoint float64 `json:"cooling_setpoint" yaml:"cooling_setpoint"`
	MaxHeatingPower float64 `json:"max_heating_power" yaml:"max_heating_power"`
	MaxCoolingPower float64 `json:"max_cooling_power" yaml:"max_cooling_power"`
}

type LuminaireDoc struct {
	Name     string  `json:"name" yaml:"name"`
	Target   string  `json:"target" yaml:"target"`
	MaxPower float64 `json:"max_power" yaml:"max_power"`
}

type OutputDoc struct {
	Kind       string `json:"kind" yaml:"kind"`
	Entity     string `json:"entity" yaml:"entity"`
	NodeIndex  int    `json:"node_index" yaml:"node_index"`
}
