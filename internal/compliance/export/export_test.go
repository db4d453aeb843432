package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodian/internal/compliance/models"
)

func sampleDoc() Document {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Document{
		SubjectID:   "s1",
		GeneratedAt: at,
		Records: []models.PersonalDataRecord{
			{Category: "identity", Fields: map[string]any{"name": "Jane, Doe"}, Source: "form", LastUpdated: at},
			{Category: "contact", Fields: map[string]any{"phone": "+1", "email": "jane@example.com"}, Source: "form", LastUpdated: at},
		},
	}
}

func TestRenderFormats(t *testing.T) {
	doc := sampleDoc()

	t.Run("json", func(t *testing.T) {
		out, err := Render(models.FormatJSON, doc)
		require.NoError(t, err)
		var back Document
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, "s1", back.SubjectID)
		assert.Len(t, back.Records, 2)
	})

	t.Run("csv rows ordered and quoted", func(t *testing.T) {
		out, err := Render(models.FormatCSV, doc)
		require.NoError(t, err)
		rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"s1", "contact", "email", "jane@example.com", "form", "2026-03-01T12:00:00Z"}, rows[1])
		assert.Equal(t, "Jane, Doe", rows[3][3])
	})

	t.Run("xml", func(t *testing.T) {
		out, err := Render(models.FormatXML, doc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "<?xml"))
		var back xmlExport
		require.NoError(t, xml.Unmarshal(out, &back))
		assert.Equal(t, "s1", back.SubjectID)
		require.Len(t, back.Categories, 2)
		assert.Equal(t, "contact", back.Categories[0].Name)
	})

	t.Run("pdf falls back to text report", func(t *testing.T) {
		out, err := Render(models.FormatPDF, doc)
		require.NoError(t, err)
		assert.Contains(t, string(out), "PERSONAL DATA REPORT")
		assert.Contains(t, string(out), "email: jane@example.com")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Render("YAML", doc)
		assert.Error(t, err)
	})
}

func TestTextEmptyAndSections(t *testing.T) {
	doc := Document{SubjectID: "gone", Sections: []Section{{Title: "Processing purposes", Lines: []string{"marketing"}}}}
	out := string(Text(doc))
	assert.Contains(t, out, "(none held)")
	assert.Contains(t, out, "Processing purposes\n  - marketing")
}

func TestChecksumIsStable(t *testing.T) {
	a, _ := CSV(sampleDoc())
	b, _ := CSV(sampleDoc())
	assert.Equal(t, Checksum(a), Checksum(b))
	assert.Len(t, Checksum(a), 64)
	assert.NotEqual(t, Checksum(a), Checksum(append(a, ' ')))
}
