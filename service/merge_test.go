package service

import (
	"reflect"
	"strings"
	"testing"

	"ade-insurance-backend/models"
)

func page(docType string, confidence float64, summary string) models.PageAnalysis {
	return models.PageAnalysis{
		DocumentType:  docType,
		Confidence:    confidence,
		Summary:       summary,
		People:        []any{},
		Organizations: []any{},
		Locations:     []any{},
		Dates:         []any{},
		Numbers:       []any{},
	}
}

func TestMergeAnalysesEmpty(t *testing.T) {
	m := MergeAnalyses(nil)

	if m.DocumentType != "Error" {
		t.Errorf("DocumentType = %q, want Error", m.DocumentType)
	}
	if m.Error != "No pages analyzed" {
		t.Errorf("Error = %q, want No pages analyzed", m.Error)
	}
	if m.Summary != "No content available" {
		t.Errorf("Summary = %q, want No content available", m.Summary)
	}
	if m.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", m.TotalPages)
	}
	if len(m.Pages) != 0 {
		t.Errorf("Pages = %v, want empty", m.Pages)
	}
}

func TestMergeAnalysesSinglePage(t *testing.T) {
	p := page("Invoice", 0.9, "An invoice.")
	p.PageNumber = 1
	m := MergeAnalyses([]models.PageAnalysis{p})

	if m.DocumentType != "Invoice" || m.Confidence != 0.9 || m.Summary != "An invoice." {
		t.Errorf("single page record altered: %+v", m.PageAnalysis)
	}
	if m.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", m.TotalPages)
	}
	if len(m.Pages) != 1 {
		t.Errorf("Pages length = %d, want 1", len(m.Pages))
	}
}

func TestMergeAnalysesDocumentTypeVote(t *testing.T) {
	tests := []struct {
		name  string
		pages []models.PageAnalysis
		want  string
	}{
		{
			name: "majority count wins",
			pages: []models.PageAnalysis{
				page("Contract", 0.8, ""),
				page("Contract", 0.8, ""),
				page("Invoice", 0.9, ""),
			},
			want: "Contract",
		},
		{
			name: "high confidence singleton beats low confidence pair",
			pages: []models.PageAnalysis{
				page("Contract", 0.2, ""),
				page("Contract", 0.2, ""),
				page("Invoice", 0.9, ""),
			},
			want: "Invoice",
		},
		{
			name: "tie keeps first encountered",
			pages: []models.PageAnalysis{
				page("Invoice", 0.8, ""),
				page("Contract", 0.8, ""),
			},
			want: "Invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MergeAnalyses(tt.pages)
			if m.DocumentType != tt.want {
				t.Errorf("DocumentType = %q, want %q", m.DocumentType, tt.want)
			}
		})
	}
}

func TestMergeAnalysesConfidenceMean(t *testing.T) {
	m := MergeAnalyses([]models.PageAnalysis{
		page("A", 0.8, ""),
		page("A", 0.7, ""),
		page("A", 0.6, ""),
	})
	if m.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", m.Confidence)
	}

	// rounding to two decimals
	m = MergeAnalyses([]models.PageAnalysis{
		page("A", 1, ""),
		page("A", 0, ""),
		page("A", 0, ""),
	})
	if m.Confidence != 0.33 {
		t.Errorf("Confidence = %v, want 0.33", m.Confidence)
	}
}

func TestMergeAnalysesSummary(t *testing.T) {
	pages := []models.PageAnalysis{
		page("A", 0.5, "First."),
		page("A", 0.5, "Second."),
		page("A", 0.5, "Third."),
		page("A", 0.5, "Fourth."),
		page("A", 0.5, "Fifth."),
	}
	m := MergeAnalyses(pages)

	if !strings.HasPrefix(m.Summary, "Multi-page document with 5 pages. ") {
		t.Errorf("Summary prefix wrong: %q", m.Summary)
	}
	if !strings.Contains(m.Summary, "Page 1: First. | Page 2: Second. | Page 3: Third.") {
		t.Errorf("Summary missing first three pages: %q", m.Summary)
	}
	if !strings.HasSuffix(m.Summary, " ... and 2 more pages") {
		t.Errorf("Summary missing overflow note: %q", m.Summary)
	}
	if strings.Contains(m.Summary, "Fourth") {
		t.Errorf("Summary should not include page 4: %q", m.Summary)
	}
}

func TestMergeAnalysesSummaryCountsSummariesNotPages(t *testing.T) {
	// Five pages, two with summaries: no overflow note, and the summaries
	// keep their original page numbers.
	pages := []models.PageAnalysis{
		page("A", 0.5, "First."),
		page("A", 0.5, ""),
		page("A", 0.5, "Third."),
		page("A", 0.5, ""),
		page("A", 0.5, ""),
	}
	m := MergeAnalyses(pages)

	want := "Multi-page document with 5 pages. Page 1: First. | Page 3: Third."
	if m.Summary != want {
		t.Errorf("Summary = %q, want %q", m.Summary, want)
	}

	// Four summaries across five pages: overflow counts the extra summary.
	pages[1].Summary = "Second."
	pages[3].Summary = "Fourth."
	m = MergeAnalyses(pages)
	if !strings.HasSuffix(m.Summary, " ... and 1 more pages") {
		t.Errorf("Summary overflow should count summaries: %q", m.Summary)
	}
	if strings.Contains(m.Summary, "Fourth") {
		t.Errorf("only first three summaries shown: %q", m.Summary)
	}
}

func TestMergeAnalysesEntityDedup(t *testing.T) {
	p1 := page("A", 0.5, "")
	p1.People = []any{
		map[string]any{"name": "Nguyễn Văn A", "role": "Insured"},
		"Trần Thị B",
	}
	p2 := page("A", 0.5, "")
	p2.People = []any{
		map[string]any{"name": "Nguyễn Văn A", "role": "Claimant"}, // dup by name
		"Trần Thị B", // dup string
		map[string]any{"role": "Witness"}, // unkeyed, kept as-is
	}

	m := MergeAnalyses([]models.PageAnalysis{p1, p2})

	if len(m.People) != 3 {
		t.Fatalf("People length = %d, want 3: %v", len(m.People), m.People)
	}
	first, ok := m.People[0].(map[string]any)
	if !ok || first["role"] != "Insured" {
		t.Errorf("first occurrence should win, got %v", m.People[0])
	}
	unkeyed, ok := m.People[2].(map[string]any)
	if !ok || unkeyed["role"] != "Witness" {
		t.Errorf("unkeyed entry should be appended, got %v", m.People[2])
	}
}

func TestMergeAnalysesDedupIsCaseSensitive(t *testing.T) {
	p1 := page("A", 0.5, "")
	p1.People = []any{map[string]any{"name": "Nguyễn Văn A"}}
	p1.Organizations = []any{"Bảo Việt"}
	p2 := page("A", 0.5, "")
	p2.People = []any{map[string]any{"name": "NGUYỄN VĂN A"}}
	p2.Organizations = []any{"BẢO VIỆT"}

	m := MergeAnalyses([]models.PageAnalysis{p1, p2})

	if len(m.People) != 2 {
		t.Errorf("case-variant people are distinct entities, got %d: %v", len(m.People), m.People)
	}
	if len(m.Organizations) != 2 {
		t.Errorf("case-variant organizations are distinct entities, got %d: %v", len(m.Organizations), m.Organizations)
	}
}

func TestMergeAnalysesDedupIdempotent(t *testing.T) {
	p1 := page("A", 0.5, "")
	p1.Numbers = []any{
		map[string]any{"label": "Policy Number", "value": "PN-001"},
		map[string]any{"label": "Amount", "value": "500000"},
	}
	p2 := page("A", 0.5, "")
	p2.Numbers = p1.Numbers

	once := MergeAnalyses([]models.PageAnalysis{p1, p2}).Numbers
	twice := MergeAnalyses([]models.PageAnalysis{p1, p2, p2}).Numbers
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedup not idempotent: %v vs %v", once, twice)
	}
}

func TestMergeAnalysesSignatureOR(t *testing.T) {
	withSig := page("A", 0.5, "")
	withSig.SignatureDetected = true
	without := page("A", 0.5, "")

	if m := MergeAnalyses([]models.PageAnalysis{without, withSig}); !m.SignatureDetected {
		t.Error("signature on any page should set merged flag")
	}
	if m := MergeAnalyses([]models.PageAnalysis{without, without}); m.SignatureDetected {
		t.Error("no signatures should leave merged flag false")
	}
}

func TestMergeAnalysesErrorPagesParticipate(t *testing.T) {
	good := page("Invoice", 0.9, "Fine.")
	bad := page("Error", 0, "Analysis failed")
	bad.Error = "oracle unavailable"

	m := MergeAnalyses([]models.PageAnalysis{good, bad})

	if m.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", m.TotalPages)
	}
	// 1×0.9 beats 1×0.0
	if m.DocumentType != "Invoice" {
		t.Errorf("DocumentType = %q, want Invoice", m.DocumentType)
	}
	// error page drags the mean down
	if m.Confidence != 0.45 {
		t.Errorf("Confidence = %v, want 0.45", m.Confidence)
	}
	if len(m.Pages) != 2 {
		t.Errorf("error page must stay in Pages, got %d entries", len(m.Pages))
	}
}

func TestMergeAnalysesTitleFirstNonNil(t *testing.T) {
	title := "Hợp đồng bảo hiểm"
	p1 := page("A", 0.5, "")
	p2 := page("A", 0.5, "")
	p2.Title = &title

	m := MergeAnalyses([]models.PageAnalysis{p1, p2})
	if m.Title == nil || *m.Title != title {
		t.Errorf("Title = %v, want %q", m.Title, title)
	}
}
