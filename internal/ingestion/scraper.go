// Package ingestion populates the knowledge graph from the MOSDAC portal.
// It is a one-shot, best-effort scraper: selector misses are logged and
// skipped, never fatal.
package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/metrics"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/logger"
	"github.com/AyushSahare964/MOSDAC-Ai-BOT/pkg/retry"
)

// GraphWriter is the mutation surface of the knowledge store.
type GraphWriter interface {
	UpsertEntity(ctx context.Context, kind schema.EntityKind, props map[string]any) error
	UpsertRelationship(ctx context.Context, fromKind schema.EntityKind, fromKey string, toKind schema.EntityKind, toKey string, rel schema.RelationshipKind) error
}

// menuEntry is one scraped navigation link.
type menuEntry struct {
	Name string
	Link string
}

type Scraper struct {
	graph       GraphWriter
	baseURL     string
	httpClient  *http.Client
	retryConfig retry.Config
}

func NewScraper(graph GraphWriter, baseURL string, timeout time.Duration) *Scraper {
	cfg := retry.DefaultConfig()
	cfg.Logger = logger.GetLogger()

	return &Scraper{
		graph:       graph,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		retryConfig: cfg,
	}
}

// ScrapeMenus fetches the portal homepage and ingests the Missions menu as
// satellites and the Data Access → Open Data menu as data products.
func (s *Scraper) ScrapeMenus(ctx context.Context) error {
	logger.Info("Starting MOSDAC menu scraping", zap.String("base_url", s.baseURL))

	doc, err := s.fetch(ctx, s.baseURL)
	if err != nil {
		return fmt.Errorf("failed to fetch portal homepage: %w", err)
	}

	total := 0

	satellites := parseMissionsMenu(doc)
	if len(satellites) == 0 {
		logger.Warn("Missions menu not found, selectors may be stale")
	}
	for _, entry := range satellites {
		err := s.graph.UpsertEntity(ctx, schema.Satellite, map[string]any{
			"name":         entry.Name,
			"link":         s.absoluteURL(entry.Link),
			"mission_type": "Meteorological",
		})
		if err != nil {
			logger.Error("Failed to ingest satellite", zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		metrics.EntitiesIngested.WithLabelValues(string(schema.Satellite)).Inc()
		total++
		logger.Info("Ingested satellite", zap.String("name", entry.Name))
	}

	products := parseOpenDataMenu(doc)
	if len(products) == 0 {
		logger.Warn("Open Data menu not found, selectors may be stale")
	}
	for _, entry := range products {
		link := s.absoluteURL(entry.Link)
		err := s.graph.UpsertEntity(ctx, schema.DataProduct, map[string]any{
			"name":        entry.Name,
			"description": fmt.Sprintf("Data product related to %s available on MOSDAC. Visit %s for more details.", entry.Name, link),
			"link":        link,
		})
		if err != nil {
			logger.Error("Failed to ingest data product", zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		metrics.EntitiesIngested.WithLabelValues(string(schema.DataProduct)).Inc()
		total++
		logger.Info("Ingested data product", zap.String("name", entry.Name))
	}

	if total == 0 {
		return fmt.Errorf("no entities ingested from %s, check the menu selectors", s.baseURL)
	}

	logger.Info("MOSDAC menu scraping completed", zap.Int("entities", total))
	return nil
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := retry.Do(ctx, s.retryConfig, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return err
	})

	return doc, err
}

func (s *Scraper) absoluteURL(href string) string {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// parseMissionsMenu extracts satellite links from the Missions dropdown.
func parseMissionsMenu(doc *goquery.Document) []menuEntry {
	var entries []menuEntry

	doc.Find("li#menu-1427-1.menuparent ul li.sf-depth-2").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		name := trimText(a)
		if name == "" {
			return
		}
		entries = append(entries, menuEntry{Name: name, Link: href})
	})

	return entries
}

// parseOpenDataMenu extracts data product links from Data Access → Open Data.
func parseOpenDataMenu(doc *goquery.Document) []menuEntry {
	var entries []menuEntry

	doc.Find("li#menu-1426-1.menuparent li#menu-1474-1.menuparent li.sf-depth-4").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		name := trimText(a)
		if name == "" {
			return
		}
		entries = append(entries, menuEntry{Name: name, Link: href})
	})

	return entries
}

func trimText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
