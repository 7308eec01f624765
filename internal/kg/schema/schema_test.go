package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRelationshipHasAShape(t *testing.T) {
	require.Len(t, RelationshipKinds, 10)
	for _, rel := range RelationshipKinds {
		shape, ok := Shapes[rel]
		require.True(t, ok, "relationship %s has no shape", rel)
		assert.True(t, IsEntityKind(string(shape.Source)), "source of %s", rel)
		assert.True(t, IsEntityKind(string(shape.Target)), "target of %s", rel)
	}
}

func TestEveryKindHasPropertiesAndNaturalKey(t *testing.T) {
	require.Len(t, EntityKinds, 10)
	for _, kind := range EntityKinds {
		props, ok := Properties[kind]
		require.True(t, ok, "kind %s has no property list", kind)
		require.NotEmpty(t, props)

		key := NaturalKey(kind)
		assert.True(t, HasProperty(kind, key),
			"natural key %q of %s must be a recognized property", key, kind)
	}
}

func TestNaturalKey(t *testing.T) {
	assert.Equal(t, "value", NaturalKey(TimeResolution))
	assert.Equal(t, "value", NaturalKey(SpatialResolution))
	assert.Equal(t, "name", NaturalKey(DataProduct))
	assert.Equal(t, "name", NaturalKey(Institution))
}

func TestIsEntityKind(t *testing.T) {
	assert.True(t, IsEntityKind("DataProduct"))
	assert.True(t, IsEntityKind("SpatialResolution"))
	assert.False(t, IsEntityKind("ORG"))
	assert.False(t, IsEntityKind(""))
}
