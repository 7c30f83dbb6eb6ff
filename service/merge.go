package service

import (
	"fmt"
	"math"
	"strings"

	"ade-insurance-backend/models"
)

// MergeAnalyses collapses per-page analysis records into one document-level
// record. The document type is chosen by weighted vote (occurrence count ×
// average confidence, ties broken by first appearance), confidence is the
// mean across pages, entity lists are concatenated with keyed dedup, and
// the signature flag is an OR over pages. Pages that failed analysis still
// participate: their placeholder records count toward the vote and the
// confidence mean.
func MergeAnalyses(pages []models.PageAnalysis) models.MergedAnalysis {
	if len(pages) == 0 {
		return models.MergedAnalysis{
			PageAnalysis: models.PageAnalysis{
				DocumentType:  "Error",
				Confidence:    0,
				Summary:       "No content available",
				People:        []any{},
				Organizations: []any{},
				Locations:     []any{},
				Dates:         []any{},
				Numbers:       []any{},
				Error:         "No pages analyzed",
			},
			TotalPages: 0,
			Pages:      []models.PageAnalysis{},
		}
	}

	if len(pages) == 1 {
		return models.MergedAnalysis{
			PageAnalysis: pages[0],
			TotalPages:   1,
			Pages:        pages,
		}
	}

	merged := models.PageAnalysis{
		DocumentType:      voteDocumentType(pages),
		Confidence:        meanConfidence(pages),
		Summary:           buildSummary(pages),
		People:            dedupEntities(pages, func(p models.PageAnalysis) []any { return p.People }),
		Organizations:     dedupEntities(pages, func(p models.PageAnalysis) []any { return p.Organizations }),
		Locations:         dedupEntities(pages, func(p models.PageAnalysis) []any { return p.Locations }),
		Dates:             dedupEntities(pages, func(p models.PageAnalysis) []any { return p.Dates }),
		Numbers:           dedupEntities(pages, func(p models.PageAnalysis) []any { return p.Numbers }),
		SignatureDetected: anySignature(pages),
	}
	for _, p := range pages {
		if p.Title != nil {
			merged.Title = p.Title
			break
		}
	}

	return models.MergedAnalysis{
		PageAnalysis: merged,
		TotalPages:   len(pages),
		Pages:        pages,
	}
}

// voteDocumentType scores each type by count × average confidence. A later
// type must strictly beat the current winner, so the first type encountered
// wins ties.
func voteDocumentType(pages []models.PageAnalysis) string {
	type tally struct {
		count int
		total float64
	}
	tallies := map[string]*tally{}
	var order []string
	for _, p := range pages {
		t, ok := tallies[p.DocumentType]
		if !ok {
			t = &tally{}
			tallies[p.DocumentType] = t
			order = append(order, p.DocumentType)
		}
		t.count++
		t.total += p.Confidence
	}

	score := func(t *tally) float64 {
		avg := t.total / float64(t.count)
		return float64(t.count) * avg
	}

	best := order[0]
	bestScore := score(tallies[best])
	for _, dt := range order[1:] {
		if s := score(tallies[dt]); s > bestScore {
			best = dt
			bestScore = s
		}
	}
	return best
}

func meanConfidence(pages []models.PageAnalysis) float64 {
	var sum float64
	for _, p := range pages {
		sum += p.Confidence
	}
	return math.Round(sum/float64(len(pages))*100) / 100
}

// buildSummary lists the first three non-empty page summaries and counts
// only the remaining summaries — pages without a summary never inflate the
// overflow note.
func buildSummary(pages []models.PageAnalysis) string {
	var summaries []string
	for i, p := range pages {
		if p.Summary != "" {
			summaries = append(summaries, fmt.Sprintf("Page %d: %s", i+1, p.Summary))
		}
	}

	shown := summaries
	if len(shown) > 3 {
		shown = shown[:3]
	}
	summary := fmt.Sprintf("Multi-page document with %d pages. ", len(pages))
	summary += strings.Join(shown, " | ")
	if len(summaries) > 3 {
		summary += fmt.Sprintf(" ... and %d more pages", len(summaries)-3)
	}
	return summary
}

// dedupEntities concatenates the selected list across pages, keeping the
// first occurrence of each keyed entry. Entries without a usable key are
// appended untouched rather than dropped.
func dedupEntities(pages []models.PageAnalysis, pick func(models.PageAnalysis) []any) []any {
	seen := map[string]bool{}
	out := []any{}
	for _, p := range pages {
		for _, e := range pick(p) {
			key, ok := entityKey(e)
			if !ok {
				out = append(out, e)
				continue
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
	}
	return out
}

// entityKey derives a dedup key: for objects the name, then label, then
// value field; for bare strings the string itself. Keys compare exactly —
// case-variant entities are distinct and both survive the merge.
func entityKey(e any) (string, bool) {
	switch v := e.(type) {
	case string:
		return v, true
	case map[string]any:
		for _, field := range []string{"name", "label", "value"} {
			if s, ok := v[field].(string); ok && s != "" {
				return field + ":" + s, true
			}
		}
	}
	return "", false
}

func anySignature(pages []models.PageAnalysis) bool {
	for _, p := range pages {
		if p.SignatureDetected {
			return true
		}
	}
	return false
}
