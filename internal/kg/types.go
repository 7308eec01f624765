// Package kg holds the result types shared between the Neo4j adapter and its
// consumers. The dialogue engine depends on these and an interface, never on
// the driver itself.
package kg

// EntityDetails is one matched node plus every relationship incident to it,
// regardless of direction.
type EntityDetails struct {
	Node          map[string]any `json:"node"`
	Relationships []Relationship `json:"relationships"`
}

// Relationship describes one edge touching the matched node.
type Relationship struct {
	Type        string `json:"type"`
	TargetName  string `json:"target_name"`
	TargetLabel string `json:"target_label"`
}

// Related is one entity reached through a typed outgoing relationship.
type Related struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Name returns the node's display name, preferring "name" over "value" so
// resolution nodes render too.
func (d *EntityDetails) Name() string {
	if d == nil {
		return ""
	}
	if name, ok := d.Node["name"].(string); ok && name != "" {
		return name
	}
	if value, ok := d.Node["value"].(string); ok {
		return value
	}
	return ""
}

// Description returns the node's description property, if any.
func (d *EntityDetails) Description() string {
	if d == nil {
		return ""
	}
	desc, _ := d.Node["description"].(string)
	return desc
}
