package modelio

import (
	"fmt"
	"math"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
	"github.com/germolinal/simple-sub002/pkg/geometry"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

const moduleName = "modelio"

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Resolve turns a parsed Document into a live *model.Model, wiring every
// name reference to its pointer and reporting the first broken reference
// as a CodeUserInput error. The invariants model.Validate checks after
// resolution come back as its own plain errors, returned unwrapped.
func Resolve(doc *Document) (*model.Model, error) {
	m := model.New()

	m.Meta = model.MetaOptions{
		Latitude:         radians(doc.Meta.LatitudeDeg),
		Longitude:        radians(doc.Meta.LongitudeDeg),
		StandardMeridian: radians(doc.Meta.StandardMeridianDeg),
		Elevation:        doc.Meta.Elevation,
	}
	m.Solar = resolveSolar(doc.Solar)
	site, err := resolveSite(doc.Site)
	if err != nil {
		return nil, err
	}
	m.Site = site

	for _, s := range doc.Substances {
		sub, err := resolveSubstance(s)
		if err != nil {
			return nil, err
		}
		m.Substances[sub.Name] = sub
	}
	for _, md := range doc.Materials {
		sub, ok := m.Substances[md.Substance]
		if !ok {
			return nil, userErr("material %q: undefined substance %q", md.Name, md.Substance)
		}
		m.Materials[md.Name] = &model.Material{Name: md.Name, Substance: sub, Thickness: md.Thickness}
	}
	for _, cd := range doc.Constructions {
		layers := make([]*model.Material, 0, len(cd.Materials))
		for _, name := range cd.Materials {
			mat, ok := m.Materials[name]
			if !ok {
				return nil, userErr("construction %q: undefined material %q", cd.Name, name)
			}
			layers = append(layers, mat)
		}
		m.Constructions[cd.Name] = &model.Construction{Name: cd.Name, Materials: layers}
	}
	for _, sd := range doc.Spaces {
		sp, err := resolveSpace(sd)
		if err != nil {
			return nil, err
		}
		m.Spaces[sp.Name] = sp
	}
	for _, bd := range doc.Buildings {
		b := &model.Building{Name: bd.Name, NStoreys: bd.NStoreys, StackCoefficient: bd.StackCoefficient, WindCoefficient: bd.WindCoefficient}
		if bd.Shelter != "" {
			shelter, err := parseShelterClass(bd.Shelter)
			if err != nil {
				return nil, userErr("building %q: %v", bd.Name, err)
			}
			b.Shelter = &shelter
		}
		for _, spaceName := range bd.Spaces {
			sp, ok := m.Spaces[spaceName]
			if !ok {
				return nil, userErr("building %q: undefined space %q", bd.Name, spaceName)
			}
			sp.Building = b
			b.Spaces = append(b.Spaces, sp)
		}
		m.Buildings[b.Name] = b
	}
	for _, sd := range doc.Surfaces {
		surf, err := resolveSurface(m, sd)
		if err != nil {
			return nil, err
		}
		m.Surfaces[surf.Name] = surf
	}
	for _, fd := range doc.Fenestrations {
		fen, err := resolveFenestration(m, fd)
		if err != nil {
			return nil, err
		}
		m.Fenestrations[fen.Name] = fen
	}
	for _, hd := range doc.HVACs {
		hvac, err := resolveHVAC(m, hd)
		if err != nil {
			return nil, err
		}
		m.HVACs[hvac.Name] = hvac
	}
	for _, ld := range doc.Luminaires {
		target, ok := m.Spaces[ld.Target]
		if !ok {
			return nil, userErr("luminaire %q: undefined target space %q", ld.Name, ld.Target)
		}
		m.Luminaires[ld.Name] = &model.Luminaire{Name: ld.Name, Target: target, MaxPower: ld.MaxPower}
	}
	for _, od := range doc.Outputs {
		req, err := resolveOutput(od)
		if err != nil {
			return nil, err
		}
		m.Outputs = append(m.Outputs, req)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func resolveSolar(d SolarDoc) model.SolarOptions {
	out := model.DefaultSolarOptions()
	if d.NSolarIrradiancePoints != 0 {
		out.NSolarIrradiancePoints = d.NSolarIrradiancePoints
	}
	if d.NAmbientSamples != 0 {
		out.NAmbientSamples = d.NAmbientSamples
	}
	if d.SkyDiscretization != 0 {
		out.SkyDiscretization = d.SkyDiscretization
	}
	if d.MaxDepth != 0 {
		out.MaxDepth = d.MaxDepth
	}
	if d.LimitWeight != 0 {
		out.LimitWeight = d.LimitWeight
	}
	out.OpticalDataPath = d.OpticalDataPath
	return out
}

func resolveSite(d SiteDoc) (weather.SiteDetails, error) {
	out := weather.DefaultSiteDetails()
	out.Altitude = d.Altitude
	out.Latitude = radians(d.LatitudeDeg)
	out.Longitude = radians(d.LongitudeDeg)
	out.StandardMeridian = radians(d.StandardMeridianDeg)
	if d.Terrain == "" {
		return out, nil
	}
	switch d.Terrain {
	case "Country":
		out.Terrain = weather.TerrainCountry
	case "Suburbs":
		out.Terrain = weather.TerrainSuburbs
	case "City":
		out.Terrain = weather.TerrainCity
	case "Ocean":
		out.Terrain = weather.TerrainOcean
	case "Urban":
		out.Terrain = weather.TerrainUrban
	default:
		return out, userErr("site: unknown terrain %q", d.Terrain)
	}
	return out, nil
}

func resolveSubstance(d SubstanceDoc) (*model.Substance, error) {
	switch d.Type {
	case "", "Normal":
		sub := model.NewNormalSubstance(d.Name, d.Conductivity, d.SpecificHeat, d.Density)
		if d.Optical != nil {
			sub.Optical = &model.OpticalProperties{
				FrontSolarAbsorptance:   d.Optical.FrontSolarAbsorptance,
				BackSolarAbsorptance:    d.Optical.BackSolarAbsorptance,
				SolarTransmittance:      d.Optical.SolarTransmittance,
				FrontVisibleReflectance: d.Optical.FrontVisibleReflectance,
				BackVisibleReflectance:  d.Optical.BackVisibleReflectance,
				VisibleTransmissivity:   d.Optical.VisibleTransmissivity,
				FrontThermalAbsorptance: d.Optical.FrontThermalAbsorptance,
				BackThermalAbsorptance:  d.Optical.BackThermalAbsorptance,
			}
		}
		return sub, nil
	case "Gas":
		gas, err := parseGas(d.Gas)
		if err != nil {
			return nil, userErr("substance %q: %v", d.Name, err)
		}
		return model.NewGasSubstance(d.Name, gas), nil
	default:
		return nil, userErr("substance %q: unknown type %q", d.Name, d.Type)
	}
}

func parseGas(s string) (model.Gas, error) {
	switch s {
	case "Air":
		return model.GasAir, nil
	case "Argon":
		return model.GasArgon, nil
	case "Krypton":
		return model.GasKrypton, nil
	case "Xenon":
		return model.GasXenon, nil
	default:
		return 0, fmt.Errorf("unknown gas %q", s)
	}
}

func parseShelterClass(s string) (model.ShelterClass, error) {
	switch s {
	case "NoObstructions":
		return model.ShelterNoObstructions, nil
	case "IsolatedRural":
		return model.ShelterIsolatedRural, nil
	case "Urban":
		return model.ShelterUrban, nil
	case "LargeLotUrban":
		return model.ShelterLargeLotUrban, nil
	case "SmallLotUrban":
		return model.ShelterSmallLotUrban, nil
	default:
		return 0, fmt.Errorf("unknown shelter class %q", s)
	}
}

func resolveSpace(d SpaceDoc) (*model.Space, error) {
	sp := &model.Space{Name: d.Name, Volume: d.Volume, Storey: d.Storey, PurposeTags: d.PurposeTags}
	if d.Infiltration != nil {
		inf, err := resolveInfiltration(*d.Infiltration)
		if err != nil {
			return nil, userErr("space %q: %v", d.Name, err)
		}
		sp.Infiltration = &inf
	}
	return sp, nil
}

func resolveInfiltration(d InfiltrationDoc) (model.Infiltration, error) {
	switch d.Type {
	case "Constant":
		return model.NewConstantInfiltration(d.Flow), nil
	case "Blast":
		return model.NewBlastInfiltration(d.Flow), nil
	case "Doe2":
		return model.NewDoe2Infiltration(d.Flow), nil
	case "DesignFlowRate":
		return model.NewDesignFlowRateInfiltration(d.A, d.B, d.C, d.D, d.Phi), nil
	case "EffectiveLeakageArea":
		return model.NewEffectiveLeakageAreaInfiltration(d.AreaM2), nil
	default:
		return model.Infiltration{}, fmt.Errorf("unknown infiltration type %q", d.Type)
	}
}

func resolvePolygon(vertices [][3]float64) geometry.Polygon {
	outer := make([]geometry.Vec3, len(vertices))
	for i, v := range vertices {
		outer[i] = geometry.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return geometry.Polygon{Outer: outer}
}

func resolveBoundary(m *model.Model, name string, d BoundaryDoc) (model.Boundary, error) {
	switch d.Type {
	case "", "Outdoor":
		return model.Outdoor(), nil
	case "Ground":
		return model.Ground(), nil
	case "Space":
		if _, ok := m.Spaces[d.Space]; !ok {
			return model.Boundary{}, userErr("%q: boundary references undefined space %q", name, d.Space)
		}
		return model.ToSpace(d.Space), nil
	case "AmbientTemperature":
		return model.AtAmbient(d.AmbientTemperature), nil
	case "Adiabatic":
		return model.Adiabatic(), nil
	default:
		return model.Boundary{}, userErr("%q: unknown boundary type %q", name, d.Type)
	}
}

func parseSurfaceType(s string) (model.SurfaceType, error) {
	switch s {
	case "":
		return model.SurfaceTypeUnspecified, nil
	case "Wall":
		return model.SurfaceTypeWall, nil
	case "Roof":
		return model.SurfaceTypeRoof, nil
	case "Floor":
		return model.SurfaceTypeFloor, nil
	case "Ceiling":
		return model.SurfaceTypeCeiling, nil
	default:
		return 0, fmt.Errorf("unknown surface type %q", s)
	}
}

func resolveSurface(m *model.Model, d SurfaceDoc) (*model.Surface, error) {
	construction, ok := m.Constructions[d.Construction]
	if !ok {
		return nil, userErr("surface %q: undefined construction %q", d.Name, d.Construction)
	}
	front, err := resolveBoundary(m, d.Name, d.Front)
	if err != nil {
		return nil, err
	}
	back, err := resolveBoundary(m, d.Name, d.Back)
	if err != nil {
		return nil, err
	}
	surfaceType, err := parseSurfaceType(d.SurfaceType)
	if err != nil {
		return nil, userErr("surface %q: %v", d.Name, err)
	}
	return &model.Surface{
		Name:         d.Name,
		Polygon:      resolvePolygon(d.Vertices),
		Construction: construction,
		Front:        front,
		Back:         back,
		Type:         surfaceType,
	}, nil
}

func resolveFenestration(m *model.Model, d FenestrationDoc) (*model.Fenestration, error) {
	surf, err := resolveSurface(m, d.SurfaceDoc)
	if err != nil {
		return nil, err
	}
	var op model.OperationKind
	switch d.Operation {
	case "", "Fixed":
		op = model.OperationFixed
	case "Continuous":
		op = model.OperationContinuous
	case "Binary":
		op = model.OperationBinary
	default:
		return nil, userErr("fenestration %q: unknown operation %q", d.Name, d.Operation)
	}
	fen := &model.Fenestration{Surface: *surf, Operation: op}
	if d.Parent != "" {
		parent, ok := m.Surfaces[d.Parent]
		if !ok {
			return nil, userErr("fenestration %q: undefined parent surface %q", d.Name, d.Parent)
		}
		fen.ParentSurface = parent
	}
	return fen, nil
}

func resolveHVAC(m *model.Model, d HVACDoc) (*model.HVAC, error) {
	target, ok := m.Spaces[d.Target]
	if !ok {
		return nil, userErr("hvac %q: undefined target space %q", d.Name, d.Target)
	}
	var kind model.HVACKind
	switch d.Type {
	case "", "IdealHeaterCooler":
		kind = model.HVACIdealHeaterCooler
	case "ElectricHeater":
		kind = model.HVACElectricHeater
	default:
		return nil, userErr("hvac %q: unknown type %q", d.Name, d.Type)
	}
	return &model.HVAC{
		Name:            d.Name,
		Kind:            kind,
		Target:          target,
		HeatingSetpoint: d.HeatingSetpoint,
		CoolingSetpoint: d.CoolingSetpoint,
		MaxHeatingPower: d.MaxHeatingPower,
		MaxCoolingPower: d.MaxCoolingPower,
	}, nil
}

func resolveOutput(d OutputDoc) (model.OutputRequest, error) {
	kinds := map[string]model.OutputKind{
		"SpaceDryBulbTemperature":     model.OutputSpaceDryBulbTemperature,
		"SurfaceFrontSolarIrradiance": model.OutputSurfaceFrontSolarIrradiance,
		"SurfaceBackSolarIrradiance":  model.OutputSurfaceBackSolarIrradiance,
		"SurfaceFrontIRIrradiance":    model.OutputSurfaceFrontIRIrradiance,
		"SurfaceBackIRIrradiance":     model.OutputSurfaceBackIRIrradiance,
		"SurfaceNodeTemperature":      model.OutputSurfaceNodeTemperature,
		"FenestrationOpenFraction":    model.OutputFenestrationOpenFraction,
		"SpaceInfiltrationVolume":     model.OutputSpaceInfiltrationVolume,
		"HVACConsumption":             model.OutputHVACConsumption,
		"LuminairePower":              model.OutputLuminairePower,
	}
	kind, ok := kinds[d.Kind]
	if !ok {
		return model.OutputRequest{}, userErr("output: unknown kind %q", d.Kind)
	}
	nodeIndex := d.NodeIndex
	if kind != model.OutputSurfaceNodeTemperature {
		nodeIndex = -1
	}
	return model.OutputRequest{Kind: kind, EntityName: d.Entity, NodeIndex: nodeIndex}, nil
}

func userErr(format string, args ...interface{}) error {
	return simerrors.New(moduleName, simerrors.CodeUserInput, format, args...)
}
