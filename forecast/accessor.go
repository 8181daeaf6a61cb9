package forecast

import (
	"sort"
	"strings"
)

// levelSeparator splits a raw key into prefix and level.
const levelSeparator = "-"

// shape selects how a clean parameter's raw keys are laid out.
type shape int

const (
	shapeLevels    shape = iota // "<prefix>-<level>" per atmospheric level
	shapeSurface                // "<prefix>-surface" only
	shapeComposite              // named sub-accessors, each with its own prefix
)

type componentSpec struct {
	name   string
	prefix string
	shape  shape
}

type accessorSpec struct {
	clean      string
	shape      shape
	prefix     string          // shapeLevels and shapeSurface
	components []componentSpec // shapeComposite
}

func waveComponents(prefix string) []componentSpec {
	return []componentSpec{
		{name: "height", prefix: prefix + "_height", shape: shapeSurface},
		{name: "period", prefix: prefix + "_period", shape: shapeSurface},
		{name: "direction", prefix: prefix + "_direction", shape: shapeSurface},
	}
}

// accessorTable declares every known clean parameter: raw prefix, external
// name, and navigation shape. Accessor variants are selected from this
// table at lookup time based on which raw keys the payload contains.
var accessorTable = []accessorSpec{
	{clean: "temp", shape: shapeLevels, prefix: "temp"},
	{clean: "dewpoint", shape: shapeLevels, prefix: "dewpoint"},
	{clean: "rh", shape: shapeLevels, prefix: "rh"},
	{clean: "gh", shape: shapeLevels, prefix: "gh"},
	{clean: "wind", shape: shapeComposite, components: []componentSpec{
		{name: "u", prefix: "wind_u", shape: shapeLevels},
		{name: "v", prefix: "wind_v", shape: shapeLevels},
	}},
	{clean: "precip", shape: shapeSurface, prefix: "past3hprecip"},
	{clean: "snowPrecip", shape: shapeSurface, prefix: "past3hsnow"},
	{clean: "convPrecip", shape: shapeSurface, prefix: "past3hconvprecip"},
	{clean: "windGust", shape: shapeSurface, prefix: "gust"},
	{clean: "cape", shape: shapeSurface, prefix: "cape"},
	{clean: "ptype", shape: shapeSurface, prefix: "ptype"},
	{clean: "lclouds", shape: shapeSurface, prefix: "lclouds"},
	{clean: "mclouds", shape: shapeSurface, prefix: "mclouds"},
	{clean: "hclouds", shape: shapeSurface, prefix: "hclouds"},
	{clean: "pressure", shape: shapeSurface, prefix: "pressure"},
	{clean: "so2sm", shape: shapeSurface, prefix: "so2sm"},
	{clean: "dustsm", shape: shapeSurface, prefix: "dustsm"},
	{clean: "cosc", shape: shapeSurface, prefix: "cosc"},
	{clean: "waves", shape: shapeComposite, components: waveComponents("waves")},
	{clean: "windWaves", shape: shapeComposite, components: waveComponents("wwaves")},
	{clean: "swell1", shape: shapeComposite, components: waveComponents("swell1")},
	{clean: "swell2", shape: shapeComposite, components: waveComponents("swell2")},
	{clean: "swell3", shape: shapeComposite, components: waveComponents("swell3")},
}

var (
	specByClean     = map[string]accessorSpec{}
	cleanByRaw      = map[string]string{}
	levelRank       = map[string]int{}
	maxKnownLevelID = len(allLevels)
)

func init() {
	for _, spec := range accessorTable {
		specByClean[spec.clean] = spec
		if spec.shape == shapeComposite {
			for _, c := range spec.components {
				cleanByRaw[c.prefix] = spec.clean
			}
			continue
		}
		cleanByRaw[spec.prefix] = spec.clean
	}
	for i, l := range allLevels {
		levelRank[string(l)] = i
	}
}

// Accessor is one of *LevelAccessor, *SurfaceAccessor or
// *CompositeAccessor, selected from the raw-key-pattern table.
type Accessor interface {
	// Name is the clean parameter or component name this accessor serves.
	Name() string
}

// LevelSeries pairs a level token with its series.
type LevelSeries struct {
	Level  string
	Values []*float64
}

// LevelAccessor navigates a parameter reported per atmospheric level,
// e.g. temp["surface"] or temp["850h"].
type LevelAccessor struct {
	resp   *Response
	name   string
	prefix string
}

func (a *LevelAccessor) Name() string { return a.name }

// Level returns the series at the given level, or nil when absent.
func (a *LevelAccessor) Level(level string) []*float64 {
	return a.resp.Data(a.prefix + levelSeparator + level)
}

// Get returns the series at level, or def when absent.
func (a *LevelAccessor) Get(level string, def []*float64) []*float64 {
	if v := a.Level(level); v != nil {
		return v
	}
	return def
}

// Levels returns the levels present for this parameter, scanned from the
// live key set, surface first then descending pressure.
func (a *LevelAccessor) Levels() []string {
	prefix := a.prefix + levelSeparator
	var out []string
	for key := range a.resp.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rankLevel(out[i]), rankLevel(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func rankLevel(level string) int {
	if r, ok := levelRank[level]; ok {
		return r
	}
	return maxKnownLevelID
}

// Items returns every level-series pair, in Levels order.
func (a *LevelAccessor) Items() []LevelSeries {
	levels := a.Levels()
	out := make([]LevelSeries, len(levels))
	for i, level := range levels {
		out[i] = LevelSeries{Level: level, Values: a.Level(level)}
	}
	return out
}

// Unit returns the parameter's unit. Units are identical across levels by
// upstream contract, so the first available level is consulted.
func (a *LevelAccessor) Unit() string {
	levels := a.Levels()
	if len(levels) == 0 {
		return ""
	}
	unit, _ := a.resp.Unit(a.prefix + levelSeparator + levels[0])
	return unit
}

// SurfaceAccessor serves a surface-only parameter whose external name may
// differ from its raw storage prefix (e.g. precip → past3hprecip-surface).
type SurfaceAccessor struct {
	resp *Response
	name string
	key  string
}

func (a *SurfaceAccessor) Name() string { return a.name }

// Values returns the surface series.
func (a *SurfaceAccessor) Values() []*float64 { return a.resp.Data(a.key) }

// Unit returns the parameter's unit, empty when upstream omitted it.
func (a *SurfaceAccessor) Unit() string {
	unit, _ := a.resp.Unit(a.key)
	return unit
}

// CompositeAccessor serves a logical parameter stored as multiple related
// raw keys: wind (u/v components) and the wave families
// (height/period/direction). Only components with at least one live key
// are exposed.
type CompositeAccessor struct {
	name       string
	components map[string]Accessor
	order      []string
}

func (a *CompositeAccessor) Name() string { return a.name }

// Component returns the named sub-accessor, e.g. "u" or "height".
func (a *CompositeAccessor) Component(name string) (Accessor, bool) {
	c, ok := a.components[name]
	return c, ok
}

// Components lists the sub-accessor names present, in declaration order.
func (a *CompositeAccessor) Components() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// AvailableParameters returns the sorted clean parameter names derivable
// from the payload's live key set. Raw prefixes unknown to the catalog
// surface verbatim, so newer upstream series remain discoverable. The set
// is recomputed on every call from the live keys.
func (r *Response) AvailableParameters() []string {
	seen := map[string]bool{}
	for key := range r.data {
		prefix := key
		if i := strings.Index(key, levelSeparator); i >= 0 {
			prefix = key[:i]
		}
		if clean, ok := cleanByRaw[prefix]; ok {
			seen[clean] = true
			continue
		}
		seen[prefix] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parameter returns the accessor for a clean parameter name. Accessors
// exist only for parameters with at least one matching raw key; absent
// names fail with a *LookupError listing the available set. Raw
// parameter-level keys are rejected with a distinct guard error steering
// the caller to Data.
func (r *Response) Parameter(name string) (Accessor, error) {
	if strings.Contains(name, levelSeparator) {
		return nil, &LookupError{Name: name, RawKey: true}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accessors[name]; ok {
		return a, nil
	}
	a, err := r.buildAccessor(name)
	if err != nil {
		return nil, err
	}
	if r.accessors == nil {
		r.accessors = map[string]Accessor{}
	}
	r.accessors[name] = a
	return a, nil
}

func (r *Response) buildAccessor(name string) (Accessor, error) {
	spec, ok := specByClean[name]
	if !ok {
		// Open schema: a prefix the catalog does not know is still
		// navigable as a plain level-indexed series.
		if r.hasPrefix(name) {
			return &LevelAccessor{resp: r, name: name, prefix: name}, nil
		}
		return nil, &LookupError{Name: name, Available: r.AvailableParameters()}
	}

	switch spec.shape {
	case shapeLevels:
		if !r.hasPrefix(spec.prefix) {
			return nil, &LookupError{Name: name, Available: r.AvailableParameters()}
		}
		return &LevelAccessor{resp: r, name: spec.clean, prefix: spec.prefix}, nil

	case shapeSurface:
		key := spec.prefix + levelSeparator + string(LevelSurface)
		if _, ok := r.data[key]; !ok {
			return nil, &LookupError{Name: name, Available: r.AvailableParameters()}
		}
		return &SurfaceAccessor{resp: r, name: spec.clean, key: key}, nil

	default: // shapeComposite
		components := map[string]Accessor{}
		var order []string
		for _, c := range spec.components {
			switch c.shape {
			case shapeLevels:
				if r.hasPrefix(c.prefix) {
					components[c.name] = &LevelAccessor{resp: r, name: c.name, prefix: c.prefix}
					order = append(order, c.name)
				}
			case shapeSurface:
				key := c.prefix + levelSeparator + string(LevelSurface)
				if _, ok := r.data[key]; ok {
					components[c.name] = &SurfaceAccessor{resp: r, name: c.name, key: key}
					order = append(order, c.name)
				}
			}
		}
		if len(components) == 0 {
			return nil, &LookupError{Name: name, Available: r.AvailableParameters()}
		}
		return &CompositeAccessor{name: spec.clean, components: components, order: order}, nil
	}
}

func (r *Response) hasPrefix(prefix string) bool {
	p := prefix + levelSeparator
	for key := range r.data {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
