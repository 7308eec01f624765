package ingestion

import (
	"context"

	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

type seedEntity struct {
	kind  schema.EntityKind
	props map[string]any
}

type seedRelationship struct {
	fromKind schema.EntityKind
	fromKey  string
	toKind   schema.EntityKind
	toKey    string
	rel      schema.RelationshipKind
}

var seedEntities = []seedEntity{
	{schema.DataProduct, map[string]any{
		"name":             "Sea Surface Temperature",
		"description":      "Global daily sea surface temperature anomaly data.",
		"coverage":         "Global",
		"update_frequency": "Daily",
		"link":             "https://mosdac.gov.in/data/sst",
	}},
	{schema.DataProduct, map[string]any{
		"name":             "Rainfall Data",
		"description":      "Gridded rainfall data derived from INSAT satellites.",
		"coverage":         "India",
		"update_frequency": "Hourly",
		"link":             "https://mosdac.gov.in/data/rainfall",
	}},
	{schema.Satellite, map[string]any{
		"name":         "INSAT-3D",
		"mission_type": "Meteorological",
		"status":       "Operational",
		"launch_date":  "2013-07-26",
	}},
	{schema.Satellite, map[string]any{
		"name":         "INSAT-3DR",
		"mission_type": "Meteorological",
		"status":       "Operational",
		"launch_date":  "2016-09-08",
	}},
	{schema.Sensor, map[string]any{
		"name":             "Imager",
		"band":             "Visible, IR",
		"wavelength_range": "0.5-12.0 µm",
	}},
	{schema.Parameter, map[string]any{"name": "Temperature", "unit": "Celsius"}},
	{schema.Parameter, map[string]any{"name": "Rainfall", "unit": "mm"}},
	{schema.DataFormat, map[string]any{"name": "NetCDF", "description": "Network Common Data Form"}},
	{schema.ApplicationArea, map[string]any{"name": "Cyclone Forecasting"}},
	{schema.ApplicationArea, map[string]any{"name": "Climate Study"}},
	{schema.ApplicationArea, map[string]any{"name": "Agricultural Monitoring"}},
	{schema.TimeResolution, map[string]any{"value": "Daily"}},
	{schema.TimeResolution, map[string]any{"value": "Hourly"}},
	{schema.SpatialResolution, map[string]any{"value": "4km"}},
	{schema.Institution, map[string]any{"name": "ISRO", "type": "Space Agency"}},
	{schema.Institution, map[string]any{"name": "MOSDAC", "type": "Data Centre"}},
	{schema.Service, map[string]any{
		"name":        "Data Download Portal",
		"description": "Portal for accessing various satellite data products",
		"access_url":  "https://mosdac.gov.in/data-access",
	}},
}

var seedRelationships = []seedRelationship{
	{schema.DataProduct, "Sea Surface Temperature", schema.Parameter, "Temperature", schema.Provides},
	{schema.DataProduct, "Sea Surface Temperature", schema.Satellite, "INSAT-3D", schema.FromSatellite},
	{schema.Satellite, "INSAT-3D", schema.Sensor, "Imager", schema.UsesSensor},
	{schema.DataProduct, "Sea Surface Temperature", schema.DataFormat, "NetCDF", schema.AvailableInFormat},
	{schema.DataProduct, "Sea Surface Temperature", schema.ApplicationArea, "Climate Study", schema.ApplicableFor},
	{schema.DataProduct, "Sea Surface Temperature", schema.Institution, "ISRO", schema.ProducedBy},
	{schema.DataProduct, "Sea Surface Temperature", schema.TimeResolution, "Daily", schema.HasTimeResolution},
	{schema.DataProduct, "Sea Surface Temperature", schema.SpatialResolution, "4km", schema.HasSpatialResolution},
	{schema.DataProduct, "Rainfall Data", schema.Parameter, "Rainfall", schema.Provides},
	{schema.DataProduct, "Rainfall Data", schema.Satellite, "INSAT-3DR", schema.FromSatellite},
	{schema.DataProduct, "Rainfall Data", schema.ApplicationArea, "Agricultural Monitoring", schema.ApplicableFor},
	{schema.DataProduct, "Rainfall Data", schema.TimeResolution, "Hourly", schema.HasTimeResolution},
	{schema.DataProduct, "Rainfall Data", schema.DataFormat, "NetCDF", schema.AvailableInFormat},
	{schema.Institution, "MOSDAC", schema.Service, "Data Download Portal", schema.OffersService},
	{schema.Institution, "ISRO", schema.Service, "Data Download Portal", schema.OffersService},
}

// SeedFixtures loads the canonical demo graph used for development
// databases and smoke tests. Upserts make it safe to run repeatedly.
func SeedFixtures(ctx context.Context, graph GraphWriter) error {
	for _, entity := range seedEntities {
		if err := graph.UpsertEntity(ctx, entity.kind, entity.props); err != nil {
			return err
		}
	}
	for _, rel := range seedRelationships {
		if err := graph.UpsertRelationship(ctx, rel.fromKind, rel.fromKey, rel.toKind, rel.toKey, rel.rel); err != nil {
			logger.Warn("Failed to seed relationship",
				zap.String("type", string(rel.rel)),
				zap.String("from", rel.fromKey),
				zap.String("to", rel.toKey),
				zap.Error(err),
			)
		}
	}

	logger.Info("Seed fixtures loaded",
		zap.Int("entities", len(seedEntities)),
		zap.Int("relationships", len(seedRelationships)),
	)
	return nil
}
