// Package export serializes a subject's personal data for portability and
// access requests.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"custodian/internal/compliance/models"
)

// ChecksumAlgorithm is reported alongside every checksum.
const ChecksumAlgorithm = "SHA-256"

// Section is an extra titled block of a human-readable report.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Document is the content of one export.
type Document struct {
	SubjectID   string                      `json:"subjectId"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Records     []models.PersonalDataRecord `json:"personalData"`
	Sections    []Section                   `json:"sections,omitempty"`
}

// Render serializes doc in format. PDF and XLSX are delivered as the text
// report; binary document generation is left to the delivery channel.
func Render(format models.ExportFormat, doc Document) ([]byte, error) {
	switch format {
	case models.FormatJSON:
		return JSON(doc)
	case models.FormatCSV:
		return CSV(doc)
	case models.FormatXML:
		return XML(doc)
	case models.FormatPDF, models.FormatXLSX:
		return Text(doc), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Checksum returns the hex SHA-256 digest of payload.
func Checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// CSV writes one row per field, ordered by category then field name.
func CSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"subject_id", "category", "field", "value", "source", "last_updated"}); err != nil {
		return nil, err
	}
	for _, rec := range sortedRecords(doc.Records) {
		for _, field := range sortedKeys(rec.Fields) {
			row := []string{
				doc.SubjectID,
				rec.Category,
				field,
				formatValue(rec.Fields[field]),
				rec.Source,
				rec.LastUpdated.UTC().Format(time.RFC3339),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type xmlExport struct {
	XMLName     xml.Name      `xml:"personalDataExport"`
	SubjectID   string        `xml:"subjectId,attr"`
	GeneratedAt string        `xml:"generatedAt,attr"`
	Categories  []xmlCategory `xml:"category"`
}

type xmlCategory struct {
	Name        string     `xml:"name,attr"`
	Source      string     `xml:"source,attr"`
	LastUpdated string     `xml:"lastUpdated,attr"`
	Fields      []xmlField `xml:"field"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

func XML(doc Document) ([]byte, error) {
	out := xmlExport{
		SubjectID:   doc.SubjectID,
		GeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
	}
	for _, rec := range sortedRecords(doc.Records) {
		cat := xmlCategory{
			Name:        rec.Category,
			Source:      rec.Source,
			LastUpdated: rec.LastUpdated.UTC().Format(time.RFC3339),
		}
		for _, field := range sortedKeys(rec.Fields) {
			cat.Fields = append(cat.Fields, xmlField{Name: field, Value: formatValue(rec.Fields[field])})
		}
		out.Categories = append(out.Categories, cat)
	}
	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Text renders a human-readable report.
func Text(doc Document) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "PERSONAL DATA REPORT\n")
	fmt.Fprintf(&b, "Subject: %s\n", doc.SubjectID)
	fmt.Fprintf(&b, "Generated: %s\n", doc.GeneratedAt.UTC().Format(time.RFC3339))

	b.WriteString("\nPersonal data\n")
	if len(doc.Records) == 0 {
		b.WriteString("  (none held)\n")
	}
	for _, rec := range sortedRecords(doc.Records) {
		fmt.Fprintf(&b, "  [%s] source=%s updated=%s\n", rec.Category, rec.Source, rec.LastUpdated.UTC().Format("2006-01-02"))
		for _, field := range sortedKeys(rec.Fields) {
			fmt.Fprintf(&b, "    %s: %s\n", field, formatValue(rec.Fields[field]))
		}
	}
	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "\n%s\n", sec.Title)
		for _, line := range sec.Lines {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}
	return []byte(b.String())
}

func sortedRecords(in []models.PersonalDataRecord) []models.PersonalDataRecord {
	out := slices.Clone(in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
