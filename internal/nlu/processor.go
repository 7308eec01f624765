// Package nlu turns a raw user utterance into a classified intent plus a
// label→name entity mapping, using a hybrid of prose NER and a static
// keyword table.
package nlu

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Candidate sources.
const (
	SourceNER     = "NER"
	SourceKeyword = "Keyword"
)

// nerLabels are the general-purpose NER tags worth keeping: organizations,
// products, locations, geo-political entities, nationality/group mentions,
// and dates.
var nerLabels = map[string]bool{
	"ORG":          true,
	"ORGANIZATION": true,
	"PRODUCT":      true,
	"LOC":          true,
	"LOCATION":     true,
	"GPE":          true,
	"NORP":         true,
	"DATE":         true,
}

// Candidate is one extracted entity span before deduplication.
type Candidate struct {
	Text   string
	Label  string
	Source string
}

// Result is the full extraction for one utterance.
type Result struct {
	OriginalQuery string
	MainIntent    Intent
	// Entities keeps at most one name per label. Labels are entity kind
	// names for keyword matches and raw NER tags otherwise.
	Entities      map[string]string
	RawEntities   []Candidate
	Keywords      []string
	Relationships []schema.RelationshipKind
}

// Processor classifies utterances. It holds no per-query state; Classify is
// a pure function of its input and the static tables.
type Processor struct {
	ready bool
}

func NewProcessor() *Processor {
	p := &Processor{}

	// Warm the prose model once so the first request does not pay for it,
	// and so /status can report whether NER is usable at all.
	if _, err := prose.NewDocument("mosdac provides satellite data products"); err != nil {
		logger.Error("Failed to load NER model, keyword matching only", zap.Error(err))
		return p
	}
	p.ready = true
	logger.Info("NLU processor initialized")
	return p
}

// Ready reports whether the NER model loaded. Keyword extraction works
// either way.
func (p *Processor) Ready() bool {
	return p.ready
}

// Classify runs the full pipeline: NER, keyword scan, relationship scan,
// intent resolution, and entity deduplication.
func (p *Processor) Classify(text string) Result {
	lower := strings.ToLower(text)

	var candidates []Candidate

	// NER candidates come first; keyword candidates appended after win any
	// same-label conflict during deduplication below.
	if p.ready && strings.TrimSpace(lower) != "" {
		doc, err := prose.NewDocument(lower)
		if err != nil {
			logger.Warn("NER failed for utterance", zap.Error(err))
		} else {
			for _, ent := range doc.Entities() {
				if nerLabels[ent.Label] {
					candidates = append(candidates, Candidate{
						Text:   ent.Text,
						Label:  ent.Label,
						Source: SourceNER,
					})
				}
			}
		}
	}

	// Every table entry is checked against the whole utterance; multiple
	// matches are all recorded, this is not first-match-wins.
	signals := make(map[string]bool)
	var keywords []string
	for _, entry := range keywordTable {
		if !strings.Contains(lower, entry.Phrase) {
			continue
		}
		switch {
		case strings.HasPrefix(entry.Label, signalPrefix):
			signals[entry.Label] = true
		case schema.IsEntityKind(entry.Label):
			candidates = append(candidates, Candidate{
				Text:   entry.Phrase,
				Label:  entry.Label,
				Source: SourceKeyword,
			})
		default:
			keywords = append(keywords, entry.Phrase)
		}
	}

	var relationships []schema.RelationshipKind
	for _, rel := range schema.RelationshipKinds {
		phrase := strings.ToLower(strings.ReplaceAll(string(rel), "_", " "))
		if strings.Contains(lower, phrase) {
			relationships = append(relationships, rel)
		}
	}

	intent := resolveIntent(signals, candidates)
	entities := dedupeCandidates(candidates)

	return Result{
		OriginalQuery: text,
		MainIntent:    intent,
		Entities:      entities,
		RawEntities:   candidates,
		Keywords:      keywords,
		Relationships: relationships,
	}
}

func resolveIntent(signals map[string]bool, candidates []Candidate) Intent {
	for _, entry := range signalPriority {
		if signals[entry.signal] {
			return entry.intent
		}
	}

	// No explicit signal: a bare mention of a known entity kind is treated
	// as a details request.
	for _, cand := range candidates {
		if schema.IsEntityKind(cand.Label) {
			return IntentGetDetails
		}
	}
	return IntentGeneralQuery
}

// dedupeCandidates collapses candidates to one name per label. For known
// entity kinds the last-scanned candidate wins; this drops earlier
// same-label matches silently and is preserved as-is from the shipped
// behavior. NER candidates are added under their raw tag unless their text
// merely restates a keyword match already mapped.
func dedupeCandidates(candidates []Candidate) map[string]string {
	entities := make(map[string]string)

	for _, cand := range candidates {
		if schema.IsEntityKind(cand.Label) {
			entities[cand.Label] = cand.Text
			continue
		}
		if cand.Source != SourceNER || containsValue(entities, cand.Text) {
			continue
		}
		overlap := false
		for label, text := range entities {
			if schema.IsEntityKind(label) && strings.Contains(cand.Text, text) {
				overlap = true
				break
			}
		}
		if !overlap {
			entities[cand.Label] = cand.Text
		}
	}

	return entities
}

func containsValue(m map[string]string, value string) bool {
	for _, v := range m {
		if v == value {
			return true
		}
	}
	return false
}
