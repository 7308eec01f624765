package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
)

// renderRelationship turns one graph edge into a sentence. The six common
// kinds have fixed templates; anything else falls back to a generic phrase.
func renderRelationship(rel kg.Relationship) string {
	switch schema.RelationshipKind(rel.Type) {
	case schema.FromSatellite:
		return fmt.Sprintf("  - It is derived from the %s satellite.", rel.TargetName)
	case schema.Provides:
		return fmt.Sprintf("  - It provides data on %s.", strings.ToLower(rel.TargetName))
	case schema.AvailableInFormat:
		return fmt.Sprintf("  - It is available in %s format.", rel.TargetName)
	case schema.ApplicableFor:
		return fmt.Sprintf("  - It is applicable for %s.", strings.ToLower(rel.TargetName))
	case schema.UsesSensor:
		return fmt.Sprintf("  - It uses the %s sensor.", rel.TargetName)
	case schema.ProducedBy:
		return fmt.Sprintf("  - It is produced by %s.", rel.TargetName)
	default:
		return fmt.Sprintf("  - Related to %s (%s) via %s.",
			rel.TargetName,
			rel.TargetLabel,
			strings.ToLower(strings.ReplaceAll(rel.Type, "_", " ")),
		)
	}
}

// renderProperties lists every node property except name and description,
// which the caller has already placed. Keys are sorted for stable output.
func renderProperties(node map[string]any) []string {
	props := make([]string, 0, len(node))
	for prop := range node {
		if prop == "name" || prop == "description" {
			continue
		}
		props = append(props, prop)
	}
	sort.Strings(props)

	lines := make([]string, 0, len(props))
	for _, prop := range props {
		lines = append(lines, fmt.Sprintf("- %s: %v", titleCase(prop), node[prop]))
	}
	return lines
}

// titleCase renders a snake_case property name as a label, e.g.
// "update_frequency" becomes "Update Frequency".
func titleCase(prop string) string {
	words := strings.Split(prop, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
