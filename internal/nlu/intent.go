package nlu

import "github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"

// Intent is the classified purpose of a user utterance. The set is closed;
// the dialogue engine dispatches on it exhaustively.
type Intent string

const (
	IntentGeneralQuery         Intent = "general_query"
	IntentGetDownloadInfo      Intent = "get_download_info"
	IntentGetDataFormat        Intent = "get_data_format"
	IntentGetTimeResolution    Intent = "get_time_resolution"
	IntentGetSpatialResolution Intent = "get_spatial_resolution"
	IntentGetApplications      Intent = "get_applications"
	IntentGetServices          Intent = "get_services"
	IntentListDataProducts     Intent = "list_data_products"
	IntentSummarizeInfo        Intent = "summarize_info"
	IntentGenerateUseCases     Intent = "generate_use_cases"
	IntentGetDetails           Intent = "get_details"
)

// Intent signals are keyword-table labels carrying this prefix instead of an
// entity kind.
const signalPrefix = "Query_"

// signalPriority fixes the resolution order: the first signal present in the
// utterance wins, regardless of where its keyword appeared in the text.
var signalPriority = []struct {
	signal string
	intent Intent
}{
	{"Query_Download", IntentGetDownloadInfo},
	{"Query_Format", IntentGetDataFormat},
	{"Query_TimeResolution", IntentGetTimeResolution},
	{"Query_SpatialResolution", IntentGetSpatialResolution},
	{"Query_Applications", IntentGetApplications},
	{"Query_Services", IntentGetServices},
	{"Query_DataProducts", IntentListDataProducts},
	{"Query_Summarize", IntentSummarizeInfo},
	{"Query_UseCases", IntentGenerateUseCases},
	{"Query_Details", IntentGetDetails},
	{"Query_Details_Object", IntentGetDetails},
}

// EntitySearchOrder returns the entity labels the dialogue engine tries, in
// order, when picking the primary entity for this intent. Intents that take
// no entity return nil.
func (i Intent) EntitySearchOrder() []schema.EntityKind {
	switch i {
	case IntentGetDetails:
		return []schema.EntityKind{
			schema.DataProduct, schema.Satellite, schema.Sensor, schema.Parameter,
			schema.ApplicationArea, schema.Service, schema.Institution,
		}
	case IntentGetDownloadInfo:
		return []schema.EntityKind{schema.DataProduct, schema.Parameter}
	case IntentGetDataFormat:
		return []schema.EntityKind{schema.DataProduct}
	case IntentGetApplications:
		return []schema.EntityKind{schema.DataProduct, schema.Parameter, schema.Satellite}
	case IntentGenerateUseCases:
		return []schema.EntityKind{
			schema.DataProduct, schema.Satellite, schema.Parameter, schema.ApplicationArea,
		}
	default:
		return nil
	}
}
