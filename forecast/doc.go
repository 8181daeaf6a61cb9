// Package forecast models the Windy Point Forecast API (v2) request and
// response data.
//
// # Request Shape
//
// One forecast is requested per WGS-84 coordinate pair. The serialized body
// carries the upstream wire field names exactly:
//
//	{"lat": ..., "lon": ..., "model": ..., "parameters": [...], "levels": [...], "key": ...}
//
// Model tokens are camel-case upstream identifiers (e.g. "iconEu",
// "gfsWave", "namConus"). [NormalizeModel] folds case and the common
// hyphen/underscore/space spellings onto them, so "ICON-EU", "icon_eu" and
// "icon eu" all resolve to "iconEu".
//
// Parameter availability varies by model and is composed from named groups
// rather than per-model lists:
//
//	common group:      all models (temp, wind, precip, clouds, pressure, ...)
//	wave group:        gfsWave only (waves, windWaves, swell1-3)
//	atmospheric group: cams only (so2sm, dustsm, cosc)
//
// Parameters requested outside the model's set are dropped with a logged
// warning rather than failing the request; the warning names every dropped
// parameter and the model's full valid set. See [FilterParameters].
//
// # Response Shape
//
// The payload is a flat, sparsely populated map. Besides "ts" (millisecond
// epoch timestamps) and "units", every key is a data series keyed by
//
//	"<rawPrefix>-<level>"   e.g. "temp-surface", "wind_u-850h"
//
// Levels are "surface" or a pressure height such as "850h". Several
// logical parameters hide behind raw prefixes that differ from their
// external names:
//
//	precip     → past3hprecip      windGust → gust
//	snowPrecip → past3hsnow        wind     → wind_u + wind_v (components)
//	convPrecip → past3hconvprecip  waves    → waves_height/_period/_direction
//
// The accessor layer ([Response.Parameter]) resolves clean names to one of
// three navigation shapes driven by this table; unknown raw prefixes from
// newer API revisions still round-trip through [Response.Data] and surface
// verbatim in [Response.AvailableParameters].
//
// Series values may be null where a model does not report a step, so data
// slices hold *float64. Timestamp count and series lengths are expected to
// match upstream but are not enforced here; the accessors never index the
// two jointly.
package forecast
