// Package config holds the Config record, the closed enumerations it
// references, and the template tuning profiles that scalarly rescale
// terrain/river/political/biome parameters.
package config

import (
	"math"

	"dario.cat/mergo"

	worlderrors "worldforge/internal/errors"
)

// WindBand is one entry of the climate sweep: a latitude range
// and the compass direction the wind travels across it.
type WindBand struct {
	LatMin, LatMax float64
	Compass        CompassDirection
}

// Config is the single input record the whole pipeline is a pure function
// of.
type Config struct {
	Seed     int64
	CellCount int
	Aspect    float64 // width/height
	CellSizeKm float64

	Template        TemplateID
	LatitudeSouth   float64 // degrees, south edge of the map
	MaxElevationM   float64
	MaxDepthM       float64

	EquatorTempC   float64
	PoleTempC      float64
	LapseCPerKm    float64
	MaxAnnualPrecipMm float64
	WindBands      []WindBand

	RiverTraceThresholdBase float64
	RiverMajorMultiplier    float64
	MinRiverVertices        int

	MinRealmCells              int
	MinRealmPopulationFraction float64

	Tuning TuningProfile
}

// WorldMetadata is the derived, read-only world envelope shared by every
// stage.
type WorldMetadata struct {
	WidthKm, HeightKm   float64
	LatitudeSouth       float64
	LatitudeNorth       float64
	MinElevationM       float64 // -MaxDepthM
	SeaLevelM           float64 // always 0
	MaxElevationM       float64
}

// TuningProfile holds the 28 scalar multipliers and biases a template may apply to
// rescale terrain magnitude, river thresholds, political target counts and
// biome thresholds before the script executes.
type TuningProfile struct {
	// Terrain magnitude
	HillHeightMul, PitDepthMul, RangeHeightMul, TroughDepthMul float64
	BlobPowerBias, LinePowerBias                               float64

	// Rivers
	RiverTraceThresholdMul, RiverMajorThresholdMul, MinRiverVerticesMul float64

	// Political targets
	CultureTargetScale, CountyTargetScale, ProvinceTargetScale float64
	MinRealmCellsMul, MinRealmPopulationFractionMul            float64

	// Biome thresholds
	SlopeScaleMul, CoastalSaltScaleMul, HabitabilityBiasMul, SuitabilityBiasMul float64
	MovementCostBiasMul                                                        float64

	// Climate
	TemperatureBiasMul, PrecipitationBiasMul, MoistureCapacityMul float64

	// Misc/reserved.
	LandRatioBiasM, ElevationNoiseMul, RiverWidthMul, PopulationDensityMul float64
	SeaLevelBiasM, CoastDistanceScaleMul                                  float64
}

// IdentityTuningProfile is the no-op profile: every multiplier is 1 and
// every bias is 0.
func IdentityTuningProfile() TuningProfile {
	return TuningProfile{
		HillHeightMul: 1, PitDepthMul: 1, RangeHeightMul: 1, TroughDepthMul: 1,
		BlobPowerBias: 0, LinePowerBias: 0,
		RiverTraceThresholdMul: 1, RiverMajorThresholdMul: 1, MinRiverVerticesMul: 1,
		CultureTargetScale: 1, CountyTargetScale: 1, ProvinceTargetScale: 1,
		MinRealmCellsMul: 1, MinRealmPopulationFractionMul: 1,
		SlopeScaleMul: 1, CoastalSaltScaleMul: 1, HabitabilityBiasMul: 1, SuitabilityBiasMul: 1,
		MovementCostBiasMul: 1,
		TemperatureBiasMul:  1, PrecipitationBiasMul: 1, MoistureCapacityMul: 1,
		LandRatioBiasM: 0, ElevationNoiseMul: 1, RiverWidthMul: 1, PopulationDensityMul: 1,
		SeaLevelBiasM: 0, CoastDistanceScaleMul: 1,
	}
}

// TemplateTuningProfile returns the built-in tuning profile for a template
// id. Most templates use the identity profile; a few rescale terrain
// magnitude or political target counts to match their character.
func TemplateTuningProfile(t TemplateID) TuningProfile {
	p := IdentityTuningProfile()
	switch t {
	case TemplateVolcano:
		p.HillHeightMul, p.RangeHeightMul = 1.4, 1.2
	case TemplateArchipelago:
		p.CountyTargetScale, p.CultureTargetScale = 1.3, 1.3
	case TemplatePangea:
		p.CultureTargetScale, p.ProvinceTargetScale = 0.7, 1.3
	case TemplateShattered:
		p.RangeHeightMul, p.TroughDepthMul = 1.3, 1.3
		p.CultureTargetScale = 1.4
	}
	return p
}

// WithTuningProfile returns a copy of c with its Tuning overridden by the
// named template's profile, merged onto the identity profile via mergo so
// only the fields the template actually customizes move.
func (c Config) WithTuningProfile(t TemplateID) (Config, error) {
	merged := IdentityTuningProfile()
	override := TemplateTuningProfile(t)
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return c, err
	}
	c.Tuning = merged
	return c, nil
}

// Validate checks for config violations: negative/zero sizes, non-finite
// latitudes, an empty wind band list, or a derived latitude span outside
// [-90, 90]. It is the only point at which the pipeline can fail before
// allocating any field.
func (c Config) Validate() error {
	if c.CellCount <= 0 || c.Aspect <= 0 || c.CellSizeKm <= 0 {
		return worlderrors.ErrNonPositiveSize
	}
	if !isFinite(c.LatitudeSouth) || !isFinite(c.MaxElevationM) || !isFinite(c.MaxDepthM) {
		return worlderrors.ErrNonFiniteValue
	}
	if c.MaxElevationM <= 0 || c.MaxDepthM <= 0 {
		return worlderrors.ErrNonPositiveSize
	}
	if len(c.WindBands) == 0 {
		return worlderrors.ErrEmptyWindBands
	}

	if c.LatitudeSouth < -90 || c.LatitudeSouth > 90 {
		return worlderrors.ErrLatitudeRange
	}
	for _, wb := range c.WindBands {
		if !isFinite(wb.LatMin) || !isFinite(wb.LatMax) {
			return worlderrors.ErrNonFiniteValue
		}
		if wb.LatMin < -90 || wb.LatMax > 90 {
			return worlderrors.ErrLatitudeRange
		}
	}
	if int(c.Template) < 0 || int(c.Template) >= len(templateNames) {
		return worlderrors.ErrUnknownTemplate
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Metadata derives the read-only WorldMetadata from a validated Config.
// Width and height follow from CellCount, CellSizeKm and Aspect. The
// latitude span is a fixed 60 degrees north of LatitudeSouth, capped at
// 90; no Config field changes it.
func (c Config) Metadata() WorldMetadata {
	heightKm := math.Sqrt(float64(c.CellCount) * c.CellSizeKm * c.CellSizeKm / c.Aspect)
	widthKm := heightKm * c.Aspect

	const defaultSpanDeg = 60.0
	north := c.LatitudeSouth + defaultSpanDeg
	if north > 90 {
		north = 90
	}

	return WorldMetadata{
		WidthKm:       widthKm,
		HeightKm:      heightKm,
		LatitudeSouth: c.LatitudeSouth,
		LatitudeNorth: north,
		MinElevationM: -c.MaxDepthM,
		SeaLevelM:     0,
		MaxElevationM: c.MaxElevationM,
	}
}
