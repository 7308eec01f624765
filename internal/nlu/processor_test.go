package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
)

func TestClassifyIntent(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name   string
		text   string
		intent Intent
	}{
		{
			name:   "download request",
			text:   "How to download rainfall data?",
			intent: IntentGetDownloadInfo,
		},
		{
			name:   "format question outranks what is",
			text:   "What is the format of sea surface temperature?",
			intent: IntentGetDataFormat,
		},
		{
			name:   "time resolution question",
			text:   "What is the time resolution of rainfall data?",
			intent: IntentGetTimeResolution,
		},
		{
			name:   "spatial resolution question",
			text:   "Tell me the spatial resolution of the imager",
			intent: IntentGetSpatialResolution,
		},
		{
			name:   "applications question",
			text:   "What are the applications of soil moisture?",
			intent: IntentGetApplications,
		},
		{
			name:   "services question",
			text:   "What services are available on the portal?",
			intent: IntentGetServices,
		},
		{
			name:   "product listing",
			text:   "What data products does MOSDAC provide?",
			intent: IntentListDataProducts,
		},
		{
			name:   "summarize follow-up",
			text:   "Can you summarize that for me?",
			intent: IntentSummarizeInfo,
		},
		{
			name:   "use case follow-up",
			text:   "Give me some use cases for this",
			intent: IntentGenerateUseCases,
		},
		{
			name:   "explicit details request",
			text:   "I want information about INSAT-3D",
			intent: IntentGetDetails,
		},
		{
			name:   "what is falls back to details",
			text:   "What is INSAT-3D?",
			intent: IntentGetDetails,
		},
		{
			name:   "bare entity mention becomes details",
			text:   "Tell me about insat-3d",
			intent: IntentGetDetails,
		},
		{
			name:   "download outranks summarize",
			text:   "How to download rainfall data and summarize it?",
			intent: IntentGetDownloadInfo,
		},
		{
			name:   "no signal and no entity",
			text:   "Hello there, good morning",
			intent: IntentGeneralQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Classify(tt.text)
			assert.Equal(t, tt.intent, result.MainIntent)
			assert.Equal(t, tt.text, result.OriginalQuery)
		})
	}
}

func TestClassifyEntities(t *testing.T) {
	p := NewProcessor()

	t.Run("download question extracts product and parameter", func(t *testing.T) {
		result := p.Classify("How to download rainfall data?")
		assert.Equal(t, "rainfall data", result.Entities["DataProduct"])
		assert.Equal(t, "rainfall", result.Entities["Parameter"])
	})

	t.Run("longer satellite name overwrites its prefix", func(t *testing.T) {
		// "insat-3dr" contains "insat-3d", so both table entries match and
		// the later one keeps the slot.
		result := p.Classify("Tell me about INSAT-3DR")
		assert.Equal(t, "insat-3dr", result.Entities["Satellite"])
	})

	t.Run("last matching product wins the label", func(t *testing.T) {
		result := p.Classify("Compare rainfall data with humidity data")
		assert.Equal(t, "humidity data", result.Entities["DataProduct"])
	})

	t.Run("format name is extracted", func(t *testing.T) {
		result := p.Classify("Is sea surface temperature available as netcdf?")
		assert.Equal(t, "netcdf", result.Entities["DataFormat"])
		assert.Equal(t, "sea surface temperature", result.Entities["DataProduct"])
	})
}

func TestClassifyEmptyText(t *testing.T) {
	p := NewProcessor()

	result := p.Classify("")
	assert.Equal(t, IntentGeneralQuery, result.MainIntent)
	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Keywords)
	assert.Empty(t, result.Relationships)
}

func TestClassifyRelationshipMentions(t *testing.T) {
	p := NewProcessor()

	result := p.Classify("Which products are available in format NetCDF?")
	require.Contains(t, result.Relationships, schema.AvailableInFormat)
	assert.Equal(t, "netcdf", result.Entities["DataFormat"])
}

func TestProcessorReady(t *testing.T) {
	p := NewProcessor()
	assert.True(t, p.Ready())
}
