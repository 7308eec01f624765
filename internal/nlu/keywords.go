package nlu

// keywordEntry maps a phrase to either an entity kind or a Query_* intent
// signal. The table is a slice, not a map: scan order is part of the
// contract, because a later entry sharing a label overwrites an earlier
// match during deduplication.
type keywordEntry struct {
	Phrase string
	Label  string
}

var keywordTable = []keywordEntry{
	// Data products (exact matches or common names)
	{"sea surface temperature", "DataProduct"},
	{"cloud top pressure", "DataProduct"},
	{"rainfall data", "DataProduct"},
	{"humidity data", "DataProduct"},
	{"wind speed", "DataProduct"},
	{"vegetation index", "DataProduct"},
	{"soil moisture", "DataProduct"},
	{"ozone concentration", "DataProduct"},
	{"aerosol optical depth", "DataProduct"},

	// Satellites
	{"insat-3d", "Satellite"},
	{"insat-3dr", "Satellite"},
	{"kalpana-1", "Satellite"},
	{"oceansat-2", "Satellite"},
	{"megha-tropiques", "Satellite"},
	{"scatsat-1", "Satellite"},
	{"gisat-1", "Satellite"},

	// Sensors
	{"imager", "Sensor"},
	{"sounder", "Sensor"},
	{"scatterometer", "Sensor"},

	// Parameters
	{"temperature", "Parameter"},
	{"pressure", "Parameter"},
	{"wind", "Parameter"},
	{"humidity", "Parameter"},
	{"rainfall", "Parameter"},
	{"ozone", "Parameter"},
	{"aerosol", "Parameter"},

	// Data formats
	{"netcdf", "DataFormat"},
	{"hdf", "DataFormat"},
	{"jpeg", "DataFormat"},
	{"geotiff", "DataFormat"},

	// Application areas
	{"cyclone forecasting", "ApplicationArea"},
	{"weather forecasting", "ApplicationArea"},
	{"climate study", "ApplicationArea"},
	{"agricultural monitoring", "ApplicationArea"},
	{"oceanography", "ApplicationArea"},
	{"atmospheric research", "ApplicationArea"},

	// Services and query signals
	{"data download", "Service"},
	{"visualization tool", "Service"},
	{"what data", "Query_DataProducts"},
	{"data on", "Query_DataProducts"},
	{"information about", "Query_Details"},
	{"details of", "Query_Details"},
	{"what is", "Query_Details_Object"},
	{"how to download", "Query_Download"},
	{"format of", "Query_Format"},
	{"time resolution", "Query_TimeResolution"},
	{"spatial resolution", "Query_SpatialResolution"},
	{"applications of", "Query_Applications"},
	{"what services", "Query_Services"},

	// Generative follow-ups
	{"summarize", "Query_Summarize"},
	{"summarize this", "Query_Summarize"},
	{"make it concise", "Query_Summarize"},
	{"can you summarize", "Query_Summarize"},
	{"use cases", "Query_UseCases"},
	{"application ideas", "Query_UseCases"},
	{"how can i use this", "Query_UseCases"},
}
