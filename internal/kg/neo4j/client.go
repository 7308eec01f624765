package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/circuitbreaker"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
)

// Client is the knowledge store adapter. Node labels and relationship types
// are interpolated into Cypher, so every public method validates them against
// the compile-time schema first; values always travel as parameters.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	cb       *circuitbreaker.CircuitBreaker
}

func NewClient(uri, username, password, database string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		uri,
		neo4j.BasicAuth(username, password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	// A down store must not prevent startup: the bot keeps answering with
	// "not in knowledge base" responses and /status reports the outage.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		logger.Warn("Neo4j not reachable at startup", zap.String("uri", uri), zap.Error(err))
	} else {
		logger.Info("Neo4j client initialized", zap.String("uri", uri))
	}

	cb := circuitbreaker.New("neo4j", circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      20 * time.Second,
		Logger:           logger.GetLogger(),
	})

	return &Client{
		driver:   driver,
		database: database,
		cb:       cb,
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// CountNodes is the liveness probe used by GET /status.
func (c *Client) CountNodes(ctx context.Context) (int64, error) {
	records, err := c.Run(ctx, "MATCH (n) RETURN count(n) AS nodeCount", nil)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	count, _ := records[0]["nodeCount"].(int64)
	return count, nil
}

// EnsureConstraints creates the uniqueness constraint behind each kind's
// natural key, making UpsertEntity race-safe at the database level.
func (c *Client) EnsureConstraints(ctx context.Context) error {
	for _, kind := range schema.EntityKinds {
		query := fmt.Sprintf(
			"CREATE CONSTRAINT IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			kind, schema.NaturalKey(kind),
		)
		if _, err := c.Run(ctx, query, nil); err != nil {
			return fmt.Errorf("failed to ensure constraint for %s: %w", kind, err)
		}
	}
	logger.Info("Neo4j unique constraints ensured")
	return nil
}

// UpsertEntity merges a node on its natural key and sets the remaining
// recognized properties. Running it twice with the same key never creates a
// second node.
func (c *Client) UpsertEntity(ctx context.Context, kind schema.EntityKind, props map[string]any) error {
	if !schema.IsEntityKind(string(kind)) {
		return fmt.Errorf("unknown entity kind: %s", kind)
	}

	key := schema.NaturalKey(kind)
	keyValue, ok := props[key]
	if !ok {
		return fmt.Errorf("entity of kind %s is missing its natural key %q", kind, key)
	}

	setClause := ""
	params := map[string]any{"key_value": keyValue}
	for prop, value := range props {
		if prop == key {
			continue
		}
		if !schema.HasProperty(kind, prop) {
			return fmt.Errorf("kind %s does not recognize property %q", kind, prop)
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("n.%s = $%s", prop, prop)
		params[prop] = value
	}

	query := fmt.Sprintf("MERGE (n:%s {%s: $key_value})", kind, key)
	if setClause != "" {
		query += " SET " + setClause
	}
	query += " RETURN n"

	if _, err := c.Run(ctx, query, params); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", kind, err)
	}

	logger.Debug("Entity upserted", zap.String("kind", string(kind)), zap.Any("key", keyValue))
	return nil
}

// UpsertRelationship merges a typed edge between two nodes identified by
// their natural keys. The edge must match the schema's declared shape.
func (c *Client) UpsertRelationship(ctx context.Context, fromKind schema.EntityKind, fromKey string, toKind schema.EntityKind, toKey string, rel schema.RelationshipKind) error {
	shape, ok := schema.Shapes[rel]
	if !ok {
		return fmt.Errorf("unknown relationship kind: %s", rel)
	}
	if shape.Source != fromKind || shape.Target != toKind {
		return fmt.Errorf("relationship %s connects %s->%s, not %s->%s",
			rel, shape.Source, shape.Target, fromKind, toKind)
	}

	query := fmt.Sprintf(
		"MATCH (from:%s {%s: $from_key}), (to:%s {%s: $to_key}) MERGE (from)-[r:%s]->(to) RETURN r",
		fromKind, schema.NaturalKey(fromKind),
		toKind, schema.NaturalKey(toKind),
		rel,
	)

	records, err := c.Run(ctx, query, map[string]any{
		"from_key": fromKey,
		"to_key":   toKey,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert relationship %s: %w", rel, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("relationship %s not created: one of %q, %q not found", rel, fromKey, toKey)
	}

	logger.Debug("Relationship upserted",
		zap.String("type", string(rel)),
		zap.String("from", fromKey),
		zap.String("to", toKey),
	)
	return nil
}

// EntityDetails finds the first node whose name contains the query string,
// case-insensitively, and returns it with all incident relationships. An
// empty label searches every kind. A miss returns (nil, nil).
func (c *Client) EntityDetails(ctx context.Context, name string, label schema.EntityKind) (*kg.EntityDetails, error) {
	match := "(n)"
	if label != "" {
		if !schema.IsEntityKind(string(label)) {
			return nil, fmt.Errorf("unknown entity kind: %s", label)
		}
		match = fmt.Sprintf("(n:%s)", label)
	}

	query := fmt.Sprintf(`
		MATCH %s
		WHERE toLower(coalesce(n.name, n.value, '')) CONTAINS toLower($entity_name)
		OPTIONAL MATCH (n)-[r]-(m)
		RETURN n, COLLECT(DISTINCT {
			type: type(r),
			target_name: coalesce(m.name, m.value),
			target_label: labels(m)[0]
		}) AS relationships
		LIMIT 1
	`, match)

	records, err := c.Run(ctx, query, map[string]any{"entity_name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	record := records[0]
	node, ok := record["n"].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected node type in result")
	}

	details := &kg.EntityDetails{Node: node.Props}

	rels, _ := record["relationships"].([]any)
	for _, raw := range rels {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		relType, _ := entry["type"].(string)
		if relType == "" {
			// Artifact of OPTIONAL MATCH on a node without edges.
			continue
		}
		targetName, _ := entry["target_name"].(string)
		targetLabel, _ := entry["target_label"].(string)
		details.Relationships = append(details.Relationships, kg.Relationship{
			Type:        relType,
			TargetName:  targetName,
			TargetLabel: targetLabel,
		})
	}

	return details, nil
}

// Related walks one typed outgoing relationship from the first entity whose
// name contains the query string, returning the reached entities.
func (c *Client) Related(ctx context.Context, name string, label schema.EntityKind, rel schema.RelationshipKind, target schema.EntityKind) ([]kg.Related, error) {
	if !schema.IsEntityKind(string(label)) {
		return nil, fmt.Errorf("unknown entity kind: %s", label)
	}
	if _, ok := schema.Shapes[rel]; !ok {
		return nil, fmt.Errorf("unknown relationship kind: %s", rel)
	}

	pattern := fmt.Sprintf("(e:%s)-[rt:%s]->(r", label, rel)
	if target != "" {
		if !schema.IsEntityKind(string(target)) {
			return nil, fmt.Errorf("unknown entity kind: %s", target)
		}
		pattern += fmt.Sprintf(":%s", target)
	}
	pattern += ")"

	query := fmt.Sprintf(`
		MATCH %s
		WHERE toLower(coalesce(e.name, e.value, '')) CONTAINS toLower($entity_name)
		RETURN coalesce(r.name, r.value) AS related_name, labels(r)[0] AS related_label, type(rt) AS relationship_type
	`, pattern)

	records, err := c.Run(ctx, query, map[string]any{"entity_name": name})
	if err != nil {
		return nil, err
	}

	var related []kg.Related
	for _, record := range records {
		name, _ := record["related_name"].(string)
		label, _ := record["related_label"].(string)
		relType, _ := record["relationship_type"].(string)
		related = append(related, kg.Related{Name: name, Label: label, Type: relType})
	}
	return related, nil
}

// Run executes raw Cypher inside the circuit breaker and flattens the result
// records into maps.
func (c *Client) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	var rows []map[string]any

	err := c.cb.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
		defer session.Close(ctx)

		result, err := session.Run(ctx, query, params)
		if err != nil {
			return err
		}

		for result.Next(ctx) {
			record := result.Record()
			row := make(map[string]any, len(record.Keys))
			for _, key := range record.Keys {
				value, _ := record.Get(key)
				row[key] = value
			}
			rows = append(rows, row)
		}
		return result.Err()
	})

	if err != nil {
		logger.Error("Neo4j query failed", zap.Error(err), zap.String("query", query))
		return nil, err
	}
	return rows, nil
}
