package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/llm"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/nlu"
)

// fakeStore serves canned lookups keyed by the extracted entity name.
type fakeStore struct {
	details map[string]*kg.EntityDetails
	related []kg.Related
	rows    []map[string]any
}

func (f *fakeStore) EntityDetails(_ context.Context, name string, _ schema.EntityKind) (*kg.EntityDetails, error) {
	return f.details[name], nil
}

func (f *fakeStore) Related(_ context.Context, _ string, _ schema.EntityKind, _ schema.RelationshipKind, _ schema.EntityKind) ([]kg.Related, error) {
	return f.related, nil
}

func (f *fakeStore) Run(_ context.Context, _ string, _ map[string]any) ([]map[string]any, error) {
	return f.rows, nil
}

type fakeCompleter struct {
	result  llm.Result
	calls   int
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) llm.Result {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.result
}

func sstDetails() *kg.EntityDetails {
	return &kg.EntityDetails{
		Node: map[string]any{
			"name":             "Sea Surface Temperature",
			"description":      "Global daily sea surface temperature anomaly data.",
			"update_frequency": "Daily",
			"link":             "https://mosdac.gov.in/data/sst",
		},
		Relationships: []kg.Relationship{
			{Type: "FROM_SATELLITE", TargetName: "INSAT-3D", TargetLabel: "Satellite"},
			{Type: "PROVIDES", TargetName: "Temperature", TargetLabel: "Parameter"},
		},
	}
}

func newTestEngine(t *testing.T, store *fakeStore, completer *fakeCompleter) *Engine {
	t.Helper()
	return NewEngine(nlu.NewProcessor(), store, completer, nil)
}

func TestRespondGetDetails(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{}
	engine := newTestEngine(t, store, completer)

	reply := engine.Respond(context.Background(), "s1", "Tell me about sea surface temperature")

	assert.Equal(t, nlu.IntentGetDetails, reply.Intent)
	assert.Contains(t, reply.Text, "Here's what I know about Sea Surface Temperature:")
	assert.Contains(t, reply.Text, "- Description: Global daily sea surface temperature anomaly data.")
	assert.Contains(t, reply.Text, "- Update Frequency: Daily")
	assert.Contains(t, reply.Text, "Related Information:")
	assert.Contains(t, reply.Text, "  - It is derived from the INSAT-3D satellite.")
	assert.Contains(t, reply.Text, "  - It provides data on temperature.")
	assert.Contains(t, reply.Text, "Would you like me to summarize this")
	assert.Zero(t, completer.calls)
}

func TestRespondDetailsThenSummarize(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeSuccess, Text: "A concise summary."}}
	engine := newTestEngine(t, store, completer)
	ctx := context.Background()

	engine.Respond(ctx, "s1", "Tell me about sea surface temperature")

	reply := engine.Respond(ctx, "s1", "Can you summarize that?")
	assert.Equal(t, nlu.IntentSummarizeInfo, reply.Intent)
	assert.Equal(t, "✨ Here's a summary of the previous information about Sea Surface Temperature:\nA concise summary.", reply.Text)
	require.Equal(t, 1, completer.calls)
	assert.Contains(t, completer.prompts[0], "Global daily sea surface temperature anomaly data.")

	// The slot was consumed; a second summarize has nothing to work with.
	reply = engine.Respond(ctx, "s1", "Can you summarize that?")
	assert.Contains(t, reply.Text, "I don't have a recent detailed piece of information to summarize")
	assert.Equal(t, 1, completer.calls)
}

func TestRespondSummarizeFailureApologizesAndClears(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeNetworkError}}
	engine := newTestEngine(t, store, completer)
	ctx := context.Background()

	engine.Respond(ctx, "s1", "Tell me about sea surface temperature")

	reply := engine.Respond(ctx, "s1", "summarize this")
	assert.Equal(t, apologyConnectivity, reply.Text)
	assert.Equal(t, 1, completer.calls)

	// Memory is gone even though the call failed.
	reply = engine.Respond(ctx, "s1", "summarize this")
	assert.Contains(t, reply.Text, "I don't have a recent detailed piece of information to summarize")
	assert.Equal(t, 1, completer.calls)
}

func TestRespondUseCasesUnknownEntitySkipsLLM(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeSuccess, Text: "ideas"}}
	engine := newTestEngine(t, store, completer)

	reply := engine.Respond(context.Background(), "s1", "Give me use cases for gisat-1")

	assert.Equal(t, nlu.IntentGenerateUseCases, reply.Intent)
	assert.Equal(t, "Please specify which data product, satellite, or parameter you'd like use case ideas for.", reply.Text)
	assert.Zero(t, completer.calls)
}

func TestRespondUseCasesKnownEntity(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeSuccess, Text: "- Track marine heatwaves"}}
	engine := newTestEngine(t, store, completer)

	reply := engine.Respond(context.Background(), "s1", "Give me use cases for sea surface temperature")

	assert.Equal(t, "✨ Here are some use case ideas for sea surface temperature:\n- Track marine heatwaves", reply.Text)
	require.Equal(t, 1, completer.calls)
	assert.Contains(t, completer.prompts[0], "Global daily sea surface temperature anomaly data.")
}

func TestRespondListDataProducts(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{
		{"name": "Sea Surface Temperature", "description": "desc"},
		{"name": "Rainfall Data", "description": "desc"},
	}}
	engine := newTestEngine(t, store, &fakeCompleter{})

	reply := engine.Respond(context.Background(), "s1", "What data products does MOSDAC provide?")

	assert.Equal(t, nlu.IntentListDataProducts, reply.Intent)
	assert.Contains(t, reply.Text, "MOSDAC provides various data products, including:")
	assert.Contains(t, reply.Text, "- Sea Surface Temperature\n")
	assert.Contains(t, reply.Text, "- Rainfall Data\n")
}

func TestRespondListDataProductsEmptyGraph(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store, &fakeCompleter{})

	reply := engine.Respond(context.Background(), "s1", "What data products does MOSDAC provide?")
	assert.Contains(t, reply.Text, "The knowledge graph might be empty")
}

func TestRespondGetDataFormat(t *testing.T) {
	store := &fakeStore{related: []kg.Related{
		{Name: "NetCDF", Label: "DataFormat", Type: "AVAILABLE_IN_FORMAT"},
		{Name: "HDF", Label: "DataFormat", Type: "AVAILABLE_IN_FORMAT"},
	}}
	engine := newTestEngine(t, store, &fakeCompleter{})

	reply := engine.Respond(context.Background(), "s1", "What is the format of rainfall data?")

	assert.Equal(t, nlu.IntentGetDataFormat, reply.Intent)
	assert.Equal(t, "The data for rainfall data is typically available in the following formats: NetCDF, HDF.", reply.Text)
}

func TestRespondGetDownloadInfo(t *testing.T) {
	t.Run("known product links directly", func(t *testing.T) {
		store := &fakeStore{details: map[string]*kg.EntityDetails{
			"rainfall data": {Node: map[string]any{
				"name": "Rainfall Data",
				"link": "https://mosdac.gov.in/data/rainfall",
			}},
		}}
		engine := newTestEngine(t, store, &fakeCompleter{})

		reply := engine.Respond(context.Background(), "s1", "How to download rainfall data?")
		assert.Contains(t, reply.Text, "https://mosdac.gov.in/data/rainfall")
	})

	t.Run("unknown product points at the website", func(t *testing.T) {
		store := &fakeStore{}
		engine := newTestEngine(t, store, &fakeCompleter{})

		reply := engine.Respond(context.Background(), "s1", "How to download soil moisture?")
		assert.Contains(t, reply.Text, "mosdac.gov.in")
		assert.Contains(t, reply.Text, "soil moisture")
	})
}

func TestRespondGetServicesDefaultsInstitution(t *testing.T) {
	store := &fakeStore{related: []kg.Related{
		{Name: "Data Download Portal", Label: "Service", Type: "OFFERS_SERVICE"},
	}}
	engine := newTestEngine(t, store, &fakeCompleter{})

	reply := engine.Respond(context.Background(), "s1", "What services are offered?")

	assert.Equal(t, nlu.IntentGetServices, reply.Intent)
	assert.Contains(t, reply.Text, "MOSDAC offers services like: Data Download Portal")
}

func TestRespondGeneralQueryClearsMemory(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeSuccess, Text: "summary"}}
	engine := newTestEngine(t, store, completer)
	ctx := context.Background()

	engine.Respond(ctx, "s1", "Tell me about sea surface temperature")

	reply := engine.Respond(ctx, "s1", "Hello there")
	assert.Equal(t, nlu.IntentGeneralQuery, reply.Intent)
	assert.Equal(t, fallbackResponse, reply.Text)

	reply = engine.Respond(ctx, "s1", "summarize this")
	assert.Contains(t, reply.Text, "I don't have a recent detailed piece of information to summarize")
	assert.Zero(t, completer.calls)
}

func TestRespondDetailsWithoutDescription(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"imager": {Node: map[string]any{
			"name": "Imager",
			"band": "Visible, IR",
		}},
	}}
	completer := &fakeCompleter{}
	engine := newTestEngine(t, store, completer)
	ctx := context.Background()

	reply := engine.Respond(ctx, "s1", "Tell me about the imager")
	assert.Contains(t, reply.Text, "Here's what I know about Imager:")
	assert.NotContains(t, reply.Text, "Would you like me to summarize this")

	// Nothing was remembered without a description.
	reply = engine.Respond(ctx, "s1", "summarize this")
	assert.Contains(t, reply.Text, "I don't have a recent detailed piece of information to summarize")
	assert.Zero(t, completer.calls)
}

func TestRespondSessionsAreIsolated(t *testing.T) {
	store := &fakeStore{details: map[string]*kg.EntityDetails{
		"sea surface temperature": sstDetails(),
	}}
	completer := &fakeCompleter{result: llm.Result{Outcome: llm.OutcomeSuccess, Text: "summary"}}
	engine := newTestEngine(t, store, completer)
	ctx := context.Background()

	engine.Respond(ctx, "alice", "Tell me about sea surface temperature")

	reply := engine.Respond(ctx, "bob", "summarize this")
	assert.Contains(t, reply.Text, "I don't have a recent detailed piece of information to summarize")

	reply = engine.Respond(ctx, "alice", "summarize this")
	assert.Contains(t, reply.Text, "Here's a summary of the previous information about Sea Surface Temperature")
}

func TestApologyFor(t *testing.T) {
	assert.Equal(t, apologyConnectivity, apologyFor(llm.Result{Outcome: llm.OutcomeNetworkError}))
	assert.Equal(t, apologyConnectivity, apologyFor(llm.Result{Outcome: llm.OutcomeBadStatus, StatusCode: 503}))
	assert.Equal(t, apologyMalformed, apologyFor(llm.Result{Outcome: llm.OutcomeMalformedResponse}))
	assert.Equal(t, apologyInternal, apologyFor(llm.Result{Outcome: llm.OutcomeInternalError}))
}
