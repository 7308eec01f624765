package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyushSahare964/MOSDAC-Ai-BOT/internal/kg/schema"
)

const menuHTML = `
<html><body>
<ul class="menu">
  <li id="menu-1427-1" class="menuparent">
    <a href="/missions">Missions</a>
    <ul>
      <li class="sf-depth-2"><a href="/insat-3d">INSAT-3D</a></li>
      <li class="sf-depth-2"><a href="/insat-3dr"> INSAT-3DR </a></li>
      <li class="sf-depth-2"><span>no link here</span></li>
    </ul>
  </li>
  <li id="menu-1426-1" class="menuparent">
    <a href="/data">Data Access</a>
    <ul>
      <li id="menu-1474-1" class="menuparent">
        <a href="/open-data">Open Data</a>
        <ul>
          <li class="sf-depth-4"><a href="/internal/sst">Sea Surface Temperature</a></li>
          <li class="sf-depth-4"><a href="https://example.org/rain">Rainfall Product</a></li>
        </ul>
      </li>
    </ul>
  </li>
</ul>
</body></html>`

type recordingWriter struct {
	entities []map[string]any
	kinds    []schema.EntityKind
}

func (w *recordingWriter) UpsertEntity(_ context.Context, kind schema.EntityKind, props map[string]any) error {
	w.kinds = append(w.kinds, kind)
	w.entities = append(w.entities, props)
	return nil
}

func (w *recordingWriter) UpsertRelationship(_ context.Context, _ schema.EntityKind, _ string, _ schema.EntityKind, _ string, _ schema.RelationshipKind) error {
	return nil
}

func TestParseMissionsMenu(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(menuHTML))
	require.NoError(t, err)

	entries := parseMissionsMenu(doc)
	require.Len(t, entries, 2)
	assert.Equal(t, "INSAT-3D", entries[0].Name)
	assert.Equal(t, "/insat-3d", entries[0].Link)
	assert.Equal(t, "INSAT-3DR", entries[1].Name)
}

func TestParseOpenDataMenu(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(menuHTML))
	require.NoError(t, err)

	entries := parseOpenDataMenu(doc)
	require.Len(t, entries, 2)
	assert.Equal(t, "Sea Surface Temperature", entries[0].Name)
	assert.Equal(t, "Rainfall Product", entries[1].Name)
}

func TestScrapeMenus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(menuHTML))
	}))
	defer server.Close()

	writer := &recordingWriter{}
	scraper := NewScraper(writer, server.URL, 5*time.Second)

	err := scraper.ScrapeMenus(context.Background())
	require.NoError(t, err)

	require.Len(t, writer.entities, 4)
	assert.Equal(t, []schema.EntityKind{
		schema.Satellite, schema.Satellite, schema.DataProduct, schema.DataProduct,
	}, writer.kinds)

	sat := writer.entities[0]
	assert.Equal(t, "INSAT-3D", sat["name"])
	assert.Equal(t, server.URL+"/insat-3d", sat["link"])
	assert.Equal(t, "Meteorological", sat["mission_type"])

	product := writer.entities[2]
	assert.Equal(t, "Sea Surface Temperature", product["name"])
	assert.Contains(t, product["description"], "Sea Surface Temperature")
	assert.Contains(t, product["description"], "MOSDAC")

	// Absolute hrefs stay as-is.
	assert.Equal(t, "https://example.org/rain", writer.entities[3]["link"])
}

func TestScrapeMenusEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body><p>maintenance</p></body></html>"))
	}))
	defer server.Close()

	scraper := NewScraper(&recordingWriter{}, server.URL, 5*time.Second)

	err := scraper.ScrapeMenus(context.Background())
	assert.Error(t, err)
}
