// Package schema is the compile-time description of the MOSDAC knowledge
// graph: the ten node kinds, the ten relationship kinds with their
// (source, target) shapes, the recognized property names per kind, and the
// natural key that makes upserts idempotent.
package schema

// EntityKind is a node label in the graph.
type EntityKind string

const (
	DataProduct       EntityKind = "DataProduct"
	Satellite         EntityKind = "Satellite"
	Sensor            EntityKind = "Sensor"
	Parameter         EntityKind = "Parameter"
	DataFormat        EntityKind = "DataFormat"
	ApplicationArea   EntityKind = "ApplicationArea"
	Service           EntityKind = "Service"
	TimeResolution    EntityKind = "TimeResolution"
	SpatialResolution EntityKind = "SpatialResolution"
	Institution       EntityKind = "Institution"
)

// EntityKinds lists every node kind, in declaration order.
var EntityKinds = []EntityKind{
	DataProduct,
	Satellite,
	Sensor,
	Parameter,
	DataFormat,
	ApplicationArea,
	Service,
	TimeResolution,
	SpatialResolution,
	Institution,
}

// RelationshipKind is a typed edge in the graph.
type RelationshipKind string

const (
	Provides             RelationshipKind = "PROVIDES"
	ObservedBy           RelationshipKind = "OBSERVED_BY"
	FromSatellite        RelationshipKind = "FROM_SATELLITE"
	UsesSensor           RelationshipKind = "USES_SENSOR"
	AvailableInFormat    RelationshipKind = "AVAILABLE_IN_FORMAT"
	ApplicableFor        RelationshipKind = "APPLICABLE_FOR"
	HasTimeResolution    RelationshipKind = "HAS_TIME_RESOLUTION"
	HasSpatialResolution RelationshipKind = "HAS_SPATIAL_RESOLUTION"
	OffersService        RelationshipKind = "OFFERS_SERVICE"
	ProducedBy           RelationshipKind = "PRODUCED_BY"
)

// RelationshipKinds lists every edge kind, in declaration order.
var RelationshipKinds = []RelationshipKind{
	Provides,
	ObservedBy,
	FromSatellite,
	UsesSensor,
	AvailableInFormat,
	ApplicableFor,
	HasTimeResolution,
	HasSpatialResolution,
	OffersService,
	ProducedBy,
}

// Shape is the fixed (source, target) node pair of a relationship kind.
type Shape struct {
	Source EntityKind
	Target EntityKind
}

// Shapes maps each relationship kind to the node kinds it may connect.
var Shapes = map[RelationshipKind]Shape{
	Provides:             {DataProduct, Parameter},
	ObservedBy:           {Parameter, Sensor},
	FromSatellite:        {DataProduct, Satellite},
	UsesSensor:           {Satellite, Sensor},
	AvailableInFormat:    {DataProduct, DataFormat},
	ApplicableFor:        {DataProduct, ApplicationArea},
	HasTimeResolution:    {DataProduct, TimeResolution},
	HasSpatialResolution: {DataProduct, SpatialResolution},
	OffersService:        {Institution, Service},
	ProducedBy:           {DataProduct, Institution},
}

// Properties enumerates the recognized property names per node kind.
var Properties = map[EntityKind][]string{
	DataProduct:       {"name", "description", "coverage", "update_frequency", "link"},
	Satellite:         {"name", "mission_type", "status", "launch_date", "link"},
	Sensor:            {"name", "band", "wavelength_range"},
	Parameter:         {"name", "unit"},
	DataFormat:        {"name", "description"},
	ApplicationArea:   {"name"},
	Service:           {"name", "description", "access_url"},
	TimeResolution:    {"value"},
	SpatialResolution: {"value"},
	Institution:       {"name", "type"},
}

// NaturalKey returns the property that uniquely identifies an entity of the
// given kind. Only the two resolution kinds key on "value".
func NaturalKey(kind EntityKind) string {
	switch kind {
	case TimeResolution, SpatialResolution:
		return "value"
	default:
		return "name"
	}
}

// IsEntityKind reports whether label names one of the ten node kinds.
func IsEntityKind(label string) bool {
	for _, k := range EntityKinds {
		if string(k) == label {
			return true
		}
	}
	return false
}

// HasProperty reports whether the kind recognizes the given property name.
func HasProperty(kind EntityKind, prop string) bool {
	for _, p := range Properties[kind] {
		if p == prop {
			return true
		}
	}
	return false
}
