package forecast

import "sort"

// Model identifies a Windy forecast computation source. The set is closed;
// tokens are the upstream camel-case identifiers.
type Model string

const (
	ModelGFS       Model = "gfs"
	ModelGFSWave   Model = "gfsWave"
	ModelICONEU    Model = "iconEu"
	ModelAROME     Model = "arome"
	ModelNAMConus  Model = "namConus"
	ModelNAMHawaii Model = "namHawaii"
	ModelNAMAlaska Model = "namAlaska"
	ModelCAMS      Model = "cams"
)

// Parameter identifies a forecast physical quantity.
type Parameter string

const (
	ParamTemp       Parameter = "temp"
	ParamDewpoint   Parameter = "dewpoint"
	ParamPrecip     Parameter = "precip"
	ParamConvPrecip Parameter = "convPrecip"
	ParamSnowPrecip Parameter = "snowPrecip"
	ParamWind       Parameter = "wind"
	ParamWindGust   Parameter = "windGust"
	ParamCAPE       Parameter = "cape"
	ParamPtype      Parameter = "ptype"
	ParamLClouds    Parameter = "lclouds"
	ParamMClouds    Parameter = "mclouds"
	ParamHClouds    Parameter = "hclouds"
	ParamRH         Parameter = "rh"
	ParamGH         Parameter = "gh"
	ParamPressure   Parameter = "pressure"

	ParamWaves     Parameter = "waves"
	ParamWindWaves Parameter = "windWaves"
	ParamSwell1    Parameter = "swell1"
	ParamSwell2    Parameter = "swell2"
	ParamSwell3    Parameter = "swell3"

	ParamSO2SM  Parameter = "so2sm"
	ParamDustSM Parameter = "dustsm"
	ParamCOSC   Parameter = "cosc"
)

// Level is an atmospheric level at which a parameter is reported.
type Level string

const (
	LevelSurface Level = "surface"
	Level1000    Level = "1000h"
	Level950     Level = "950h"
	Level925     Level = "925h"
	Level900     Level = "900h"
	Level850     Level = "850h"
	Level800     Level = "800h"
	Level700     Level = "700h"
	Level600     Level = "600h"
	Level500     Level = "500h"
	Level400     Level = "400h"
	Level300     Level = "300h"
	Level200     Level = "200h"
	Level150     Level = "150h"
)

// Parameter groups. Model availability is composed from these sets, so a
// new parameter only has to join its group, not every model's list.
var (
	commonParameters = []Parameter{
		ParamTemp, ParamDewpoint, ParamPrecip, ParamConvPrecip,
		ParamSnowPrecip, ParamWind, ParamWindGust, ParamCAPE, ParamPtype,
		ParamLClouds, ParamMClouds, ParamHClouds, ParamRH, ParamGH,
		ParamPressure,
	}
	waveParameters = []Parameter{
		ParamWaves, ParamWindWaves, ParamSwell1, ParamSwell2, ParamSwell3,
	}
	atmosphericParameters = []Parameter{
		ParamSO2SM, ParamDustSM, ParamCOSC,
	}
)

var allModels = []Model{
	ModelGFS, ModelGFSWave, ModelICONEU, ModelAROME,
	ModelNAMConus, ModelNAMHawaii, ModelNAMAlaska, ModelCAMS,
}

var allLevels = []Level{
	LevelSurface, Level1000, Level950, Level925, Level900, Level850,
	Level800, Level700, Level600, Level500, Level400, Level300,
	Level200, Level150,
}

// modelParameters maps every model to its supported parameter set.
var modelParameters = map[Model]map[Parameter]bool{
	ModelGFS:       paramSet(commonParameters),
	ModelGFSWave:   paramSet(commonParameters, waveParameters),
	ModelICONEU:    paramSet(commonParameters),
	ModelAROME:     paramSet(commonParameters),
	ModelNAMConus:  paramSet(commonParameters),
	ModelNAMHawaii: paramSet(commonParameters),
	ModelNAMAlaska: paramSet(commonParameters),
	ModelCAMS:      paramSet(commonParameters, atmosphericParameters),
}

var knownParameters = paramSet(commonParameters, waveParameters, atmosphericParameters)

var knownLevels = func() map[Level]bool {
	set := make(map[Level]bool, len(allLevels))
	for _, l := range allLevels {
		set[l] = true
	}
	return set
}()

func paramSet(groups ...[]Parameter) map[Parameter]bool {
	set := make(map[Parameter]bool)
	for _, group := range groups {
		for _, p := range group {
			set[p] = true
		}
	}
	return set
}

// Models returns every forecast model in catalog order.
func Models() []Model {
	out := make([]Model, len(allModels))
	copy(out, allModels)
	return out
}

// AllLevels returns every atmospheric level, surface first, then pressure
// heights in descending pressure.
func AllLevels() []Level {
	out := make([]Level, len(allLevels))
	copy(out, allLevels)
	return out
}

// ParametersFor returns the sorted parameter set supported by model.
func ParametersFor(model Model) []Parameter {
	set := modelParameters[model]
	out := make([]Parameter, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Supports reports whether model accepts parameter.
func Supports(model Model, parameter Parameter) bool {
	return modelParameters[model][parameter]
}
