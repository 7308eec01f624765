// Package bot is the dialogue engine: it classifies the utterance, drives
// the knowledge store, and renders a natural-language response, keeping one
// follow-up memory slot per session.
package bot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/llm"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/metrics"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/nlu"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Knowledge is the read surface of the knowledge store. Lookups that fail
// degrade to empty results; the engine never retries them.
type Knowledge interface {
	EntityDetails(ctx context.Context, name string, label schema.EntityKind) (*kg.EntityDetails, error)
	Related(ctx context.Context, name string, label schema.EntityKind, rel schema.RelationshipKind, target schema.EntityKind) ([]kg.Related, error)
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Completer is the generative augmentation client.
type Completer interface {
	Complete(ctx context.Context, prompt string) llm.Result
}

// DetailsCache is an optional read-through cache for entity lookups. The
// graph is only mutated by ingestion, so cached details stay valid within
// their TTL.
type DetailsCache interface {
	GetDetails(ctx context.Context, name, label string) (*kg.EntityDetails, bool)
	SetDetails(ctx context.Context, name, label string, details *kg.EntityDetails)
}

// Fixed response fragments, kept verbatim from the shipped bot.
const (
	fallbackResponse = "I'm sorry, I couldn't find information on that. Could you please rephrase or ask about specific MOSDAC data products, satellites, or services?"

	followUpOffer = "\n\n✨ Would you like me to summarize this, or generate use case ideas for this data?"

	apologyConnectivity = "I'm having trouble connecting to the generative AI right now. Please try again later."
	apologyMalformed    = "I couldn't generate a response from the AI at this moment."
	apologyInternal     = "An internal error occurred while processing your request."

	summarizePrompt = "Summarize the following information about %s concisely in a paragraph:\n\n%s"
	useCasePrompt   = "Generate 3-5 creative and practical use case ideas for '%s' (which is %s), considering its nature as %s. Focus on meteorological, oceanographic, or environmental applications. Provide them as a bulleted list."

	listProductsQuery = "MATCH (p:DataProduct) RETURN p.name AS name, p.description AS description LIMIT 5"

	defaultInstitution = "MOSDAC"
)

// Reply is one engine answer plus the intent that produced it, for transport
// logging and metrics.
type Reply struct {
	Text   string
	Intent nlu.Intent
}

type Engine struct {
	processor *nlu.Processor
	store     Knowledge
	completer Completer
	cache     DetailsCache
	sessions  *SessionStore
}

// NewEngine wires the extractor, store, and augmentation client together.
// cache may be nil.
func NewEngine(processor *nlu.Processor, store Knowledge, completer Completer, cache DetailsCache) *Engine {
	return &Engine{
		processor: processor,
		store:     store,
		completer: completer,
		cache:     cache,
		sessions:  NewSessionStore(),
	}
}

// Respond classifies the message and dispatches to the intent's handler.
// Every branch settles the session's memory slot: get_details sets it when a
// description was shown, summarize consumes it, everything else clears it.
func (e *Engine) Respond(ctx context.Context, sessionID, message string) Reply {
	result := e.processor.Classify(message)

	logger.Debug("Utterance classified",
		zap.String("intent", string(result.MainIntent)),
		zap.Any("entities", result.Entities),
		zap.Any("relationships", result.Relationships),
	)

	var text string
	switch result.MainIntent {
	case nlu.IntentGetDetails:
		text = e.handleGetDetails(ctx, sessionID, result)
	case nlu.IntentListDataProducts:
		text = e.handleListDataProducts(ctx, sessionID)
	case nlu.IntentGetDataFormat:
		text = e.handleGetDataFormat(ctx, sessionID, result)
	case nlu.IntentGetDownloadInfo:
		text = e.handleGetDownloadInfo(ctx, sessionID, result)
	case nlu.IntentGetApplications:
		text = e.handleGetApplications(ctx, sessionID, result)
	case nlu.IntentGetServices:
		text = e.handleGetServices(ctx, sessionID, result)
	case nlu.IntentSummarizeInfo:
		text = e.handleSummarize(ctx, sessionID)
	case nlu.IntentGenerateUseCases:
		text = e.handleGenerateUseCases(ctx, sessionID, result)
	case nlu.IntentGeneralQuery, nlu.IntentGetTimeResolution, nlu.IntentGetSpatialResolution:
		// The resolution intents classify but have no handler yet.
		e.sessions.Clear(sessionID)
		text = fallbackResponse
	default:
		e.sessions.Clear(sessionID)
		text = fallbackResponse
	}

	return Reply{Text: text, Intent: result.MainIntent}
}

func (e *Engine) handleGetDetails(ctx context.Context, sessionID string, result nlu.Result) string {
	name, _ := findPrimaryEntity(result.Entities, result.MainIntent.EntitySearchOrder())
	if name == "" {
		e.sessions.Clear(sessionID)
		return "Please specify which MOSDAC data product, satellite, or service you'd like to know about."
	}

	// The label is intentionally dropped: details lookups search every kind
	// so that a keyword tagged Parameter still finds the DataProduct whose
	// name contains it.
	details := e.fetchDetails(ctx, name, "")
	if details == nil {
		e.sessions.Clear(sessionID)
		return fmt.Sprintf("I couldn't find detailed information about '%s'. It might not be in my knowledge base yet.", name)
	}

	displayName := details.Name()
	if displayName == "" {
		displayName = name
	}

	parts := []string{fmt.Sprintf("Here's what I know about %s:", displayName)}

	description := details.Description()
	if description != "" {
		parts = append(parts, "- Description: "+description)
		e.sessions.Remember(sessionID, description, displayName)
	} else {
		e.sessions.Clear(sessionID)
	}

	parts = append(parts, renderProperties(details.Node)...)

	if len(details.Relationships) > 0 {
		parts = append(parts, "\nRelated Information:")
		for _, rel := range details.Relationships {
			parts = append(parts, renderRelationship(rel))
		}
	}

	text := strings.Join(parts, "\n")
	if description != "" {
		text += followUpOffer
	}
	return text
}

func (e *Engine) handleListDataProducts(ctx context.Context, sessionID string) string {
	e.sessions.Clear(sessionID)

	rows, err := e.store.Run(ctx, listProductsQuery, nil)
	if err != nil {
		logger.Warn("Data product listing failed", zap.Error(err))
	}
	if len(rows) == 0 {
		return "I couldn't find a list of data products. The knowledge graph might be empty or the query needs refinement."
	}

	text := "MOSDAC provides various data products, including:\n"
	for _, row := range rows {
		name, _ := row["name"].(string)
		text += fmt.Sprintf("- %s\n", name)
	}
	text += "You can ask for more details about a specific product, e.g., 'Tell me about sea surface temperature data'."
	return text
}

func (e *Engine) handleGetDataFormat(ctx context.Context, sessionID string, result nlu.Result) string {
	e.sessions.Clear(sessionID)

	name, label := findPrimaryEntity(result.Entities, result.MainIntent.EntitySearchOrder())
	if name == "" {
		return "Please specify which data product's format you are interested in."
	}

	formats := e.fetchRelated(ctx, name, label, schema.AvailableInFormat, schema.DataFormat)
	if len(formats) == 0 {
		return fmt.Sprintf("I don't have information on the specific data format for %s.", name)
	}
	return fmt.Sprintf("The data for %s is typically available in the following formats: %s.", name, joinNames(formats))
}

func (e *Engine) handleGetDownloadInfo(ctx context.Context, sessionID string, result nlu.Result) string {
	e.sessions.Clear(sessionID)

	name, label := findPrimaryEntity(result.Entities, result.MainIntent.EntitySearchOrder())
	if name == "" {
		return "Please specify which data product you'd like download information for."
	}

	details := e.fetchDetails(ctx, name, label)
	if details != nil {
		if link, ok := details.Node["link"].(string); ok && link != "" {
			return fmt.Sprintf("You can usually download data for %s from this link: %s. Please visit the MOSDAC website for specific download procedures.", details.Name(), link)
		}
	}
	return fmt.Sprintf("I don't have direct download links for %s. Please visit the MOSDAC website (mosdac.gov.in) and navigate to the data products section to find download options.", name)
}

func (e *Engine) handleGetApplications(ctx context.Context, sessionID string, result nlu.Result) string {
	e.sessions.Clear(sessionID)

	name, label := findPrimaryEntity(result.Entities, result.MainIntent.EntitySearchOrder())
	if name == "" {
		return "Please tell me which data product or satellite you'd like to know applications for."
	}

	applications := e.fetchRelated(ctx, name, label, schema.ApplicableFor, schema.ApplicationArea)
	if len(applications) == 0 {
		return fmt.Sprintf("I don't have specific application information for %s in my knowledge base.", name)
	}
	return fmt.Sprintf("The data/satellite '%s' is applicable for areas such as: %s.", name, joinNames(applications))
}

func (e *Engine) handleGetServices(ctx context.Context, sessionID string, result nlu.Result) string {
	e.sessions.Clear(sessionID)

	institution := result.Entities[string(schema.Institution)]
	if institution == "" {
		institution = defaultInstitution
	}

	services := e.fetchRelated(ctx, institution, schema.Institution, schema.OffersService, schema.Service)
	if len(services) == 0 {
		return fmt.Sprintf("I couldn't find specific service information for %s.", institution)
	}
	return fmt.Sprintf("%s offers services like: %s. You can often find visualization tools or data download portals.", institution, joinNames(services))
}

func (e *Engine) handleSummarize(ctx context.Context, sessionID string) string {
	content, subject, ok := e.sessions.Consume(sessionID)
	if !ok {
		return "I don't have a recent detailed piece of information to summarize. Please ask me about a specific data product or satellite first."
	}

	result := e.complete(ctx, fmt.Sprintf(summarizePrompt, subject, content))
	if !result.OK() {
		return apologyFor(result)
	}
	return fmt.Sprintf("✨ Here's a summary of the previous information about %s:\n%s", subject, result.Text)
}

func (e *Engine) handleGenerateUseCases(ctx context.Context, sessionID string, result nlu.Result) string {
	e.sessions.Clear(sessionID)

	name, label := findPrimaryEntity(result.Entities, result.MainIntent.EntitySearchOrder())
	if name == "" {
		return "Please specify which data product, satellite, or parameter you'd like use case ideas for."
	}

	details := e.fetchDetails(ctx, name, label)
	if details == nil {
		// Unknown entities never reach the LLM.
		return "Please specify which data product, satellite, or parameter you'd like use case ideas for."
	}

	contextText := details.Description()
	if contextText == "" {
		contextText = fmt.Sprintf("data related to %s", name)
	}

	prompt := fmt.Sprintf(useCasePrompt, name, strings.ToLower(string(label)), contextText)
	completion := e.complete(ctx, prompt)
	if !completion.OK() {
		return apologyFor(completion)
	}
	return fmt.Sprintf("✨ Here are some use case ideas for %s:\n%s", name, completion.Text)
}

// fetchDetails reads through the cache and treats store failures as misses.
func (e *Engine) fetchDetails(ctx context.Context, name string, label schema.EntityKind) *kg.EntityDetails {
	if e.cache != nil {
		if details, ok := e.cache.GetDetails(ctx, name, string(label)); ok {
			metrics.CacheHits.Inc()
			return details
		}
		metrics.CacheMisses.Inc()
	}

	details, err := e.store.EntityDetails(ctx, name, label)
	if err != nil {
		metrics.KGLookups.WithLabelValues("error").Inc()
		logger.Warn("Entity lookup failed", zap.String("entity", name), zap.Error(err))
		return nil
	}
	if details == nil {
		metrics.KGLookups.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.KGLookups.WithLabelValues("hit").Inc()
	if e.cache != nil {
		e.cache.SetDetails(ctx, name, string(label), details)
	}
	return details
}

func (e *Engine) fetchRelated(ctx context.Context, name string, label schema.EntityKind, rel schema.RelationshipKind, target schema.EntityKind) []kg.Related {
	related, err := e.store.Related(ctx, name, label, rel, target)
	if err != nil {
		metrics.KGLookups.WithLabelValues("error").Inc()
		logger.Warn("Related lookup failed",
			zap.String("entity", name),
			zap.String("relationship", string(rel)),
			zap.Error(err),
		)
		return nil
	}
	if len(related) == 0 {
		metrics.KGLookups.WithLabelValues("miss").Inc()
	} else {
		metrics.KGLookups.WithLabelValues("hit").Inc()
	}
	return related
}

func (e *Engine) complete(ctx context.Context, prompt string) llm.Result {
	result := e.completer.Complete(ctx, prompt)
	metrics.AugmentationCalls.WithLabelValues(result.Outcome.String()).Inc()
	return result
}

// findPrimaryEntity picks one entity name from the extraction: the first
// preferred label present wins, then any label that names a known kind.
func findPrimaryEntity(entities map[string]string, preferred []schema.EntityKind) (string, schema.EntityKind) {
	for _, label := range preferred {
		if name, ok := entities[string(label)]; ok {
			return name, label
		}
	}
	for _, kind := range schema.EntityKinds {
		if name, ok := entities[string(kind)]; ok {
			return name, kind
		}
	}
	return "", ""
}

// apologyFor maps each failure variant of the augmentation client to its
// fixed user-facing string.
func apologyFor(result llm.Result) string {
	switch result.Outcome {
	case llm.OutcomeNetworkError, llm.OutcomeBadStatus:
		return apologyConnectivity
	case llm.OutcomeMalformedResponse:
		return apologyMalformed
	default:
		return apologyInternal
	}
}

func joinNames(related []kg.Related) string {
	names := make([]string, 0, len(related))
	for _, r := range related {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
