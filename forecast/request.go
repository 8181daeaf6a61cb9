package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Defaults applied when the caller omits parameters or levels.
var (
	defaultParameters = []Parameter{ParamTemp, ParamWind}
	defaultLevels     = []Level{LevelSurface}
)

// PointRequest is the serialized body for the point-forecast endpoint.
// Field names are the upstream wire contract and must not change.
// A request is built once per forecast call and is immutable afterwards.
type PointRequest struct {
	Lat        float64     `json:"lat" validate:"gte=-90,lte=90"`
	Lon        float64     `json:"lon" validate:"gte=-180,lte=180"`
	Model      Model       `json:"model"`
	Parameters []Parameter `json:"parameters"`
	Levels     []Level     `json:"levels"`
	Key        string      `json:"key" validate:"required"`
}

// modelAliases maps folded spellings to canonical models, e.g.
// "iconeu" → iconEu. Built from the catalog so new models need no entry.
var modelAliases = func() map[string]Model {
	aliases := make(map[string]Model, len(allModels))
	for _, m := range allModels {
		aliases[foldToken(string(m))] = m
	}
	return aliases
}()

// foldToken lower-cases a token and strips hyphen/underscore/space so that
// "ICON-EU", "icon_eu" and "icon eu" collapse to "iconeu".
func foldToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, s)
}

// NormalizeModel resolves a free-form model token to its canonical Model.
// Canonical values pass through unchanged. Unknown tokens fail with an
// *UnknownModelError listing every valid model.
func NormalizeModel(input string) (Model, error) {
	if m, ok := modelAliases[foldToken(input)]; ok {
		return m, nil
	}
	return "", &UnknownModelError{Input: input, Valid: Models()}
}

// NormalizeParameters lower-cases free-text parameter tokens and passes
// canonical tokens through unchanged. Nil or empty input yields the
// default [temp, wind]. Order is preserved and duplicates are kept;
// compatibility with the model is checked separately by FilterParameters.
func NormalizeParameters(inputs []string) []Parameter {
	if len(inputs) == 0 {
		out := make([]Parameter, len(defaultParameters))
		copy(out, defaultParameters)
		return out
	}
	out := make([]Parameter, 0, len(inputs))
	for _, in := range inputs {
		if p := Parameter(in); knownParameters[p] {
			out = append(out, p)
			continue
		}
		out = append(out, Parameter(strings.ToLower(strings.TrimSpace(in))))
	}
	return out
}

// NormalizeLevels resolves level tokens. Nil or empty input yields the
// default [surface]. Unknown levels fail with a *ValidationError listing
// the valid set.
func NormalizeLevels(inputs []string) ([]Level, error) {
	if len(inputs) == 0 {
		out := make([]Level, len(defaultLevels))
		copy(out, defaultLevels)
		return out, nil
	}
	out := make([]Level, 0, len(inputs))
	for _, in := range inputs {
		l := Level(strings.ToLower(strings.TrimSpace(in)))
		if !knownLevels[l] {
			names := make([]string, len(allLevels))
			for i, known := range allLevels {
				names[i] = string(known)
			}
			return nil, &ValidationError{
				Field:   "levels",
				Message: fmt.Sprintf("unknown level %q, valid levels: %s", in, strings.Join(names, ", ")),
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// FilterParameters drops parameters the model does not support, keeping
// input order. Dropped parameters are reported once through logger with
// the model's full sorted valid set; the request itself stays usable
// (warn-and-filter policy).
func FilterParameters(model Model, params []Parameter, logger *slog.Logger) []Parameter {
	valid := make([]Parameter, 0, len(params))
	var dropped []string
	for _, p := range params {
		if Supports(model, p) {
			valid = append(valid, p)
			continue
		}
		dropped = append(dropped, string(p))
	}
	if len(dropped) > 0 && logger != nil {
		supported := ParametersFor(model)
		names := make([]string, len(supported))
		for i, p := range supported {
			names[i] = string(p)
		}
		logger.Warn("dropping parameters not available for model",
			"model", string(model),
			"dropped", strings.Join(dropped, ", "),
			"valid", strings.Join(names, ", "),
		)
	}
	return valid
}

// NewPointRequest normalizes and validates raw user input into an
// immutable PointRequest. Model tokens and parameters accept free-form
// spellings; parameters outside the model's set are filtered with a
// warning. Coordinate bounds and the credential are enforced via
// validator tags and surface as *ValidationError.
func NewPointRequest(lat, lon float64, model string, parameters, levels []string, key string, logger *slog.Logger) (*PointRequest, error) {
	m, err := NormalizeModel(model)
	if err != nil {
		return nil, err
	}
	lvls, err := NormalizeLevels(levels)
	if err != nil {
		return nil, err
	}

	req := &PointRequest{
		Lat:        lat,
		Lon:        lon,
		Model:      m,
		Parameters: FilterParameters(m, NormalizeParameters(parameters), logger),
		Levels:     lvls,
		Key:        key,
	}
	if err := validate.Struct(req); err != nil {
		return nil, translateFieldError(err)
	}
	return req, nil
}

// translateFieldError converts the first validator field error into the
// package's ValidationError, naming the field and its bound.
func translateFieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fe := fieldErrs[0]; fe.Field() {
	case "Lat":
		return &ValidationError{Field: "lat", Message: "latitude must be between -90 and 90"}
	case "Lon":
		return &ValidationError{Field: "lon", Message: "longitude must be between -180 and 180"}
	case "Key":
		return &ValidationError{Field: "key", Message: "API key is required"}
	default:
		return &ValidationError{Field: strings.ToLower(fe.Field()), Message: fe.Error()}
	}
}
