package classifications_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifications"
	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
	"github.com/HIMANSHUIPE/HSClassification/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", classifications.ErrNotFound, http.StatusNotFound},
		{"empty description", classifier.ErrEmptyDescription, http.StatusBadRequest},
		{"empty company", classifier.ErrEmptyCompany, http.StatusBadRequest},
		{"not configured", completion.ErrNotConfigured, http.StatusServiceUnavailable},
		{"malformed response", classifier.ErrMalformedResponse, http.StatusBadGateway},
		{"incomplete classification", classifier.ErrIncompleteClassification, http.StatusBadGateway},
		{"empty portfolio", classifier.ErrEmptyPortfolio, http.StatusBadGateway},
		{"pipeline failure", classifier.ErrClassificationFailed, http.StatusBadGateway},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", classifications.ErrNotFound), http.StatusNotFound},
		{"wrapped pipeline failure", fmt.Errorf("classify: %w", classifier.ErrClassificationFailed), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifications.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"hs_code":       {"8471.30.01"},
			"customer_name": {"Acme Exports"},
			"dual_use_only": {"true"},
		}

		f := classifications.FiltersFromQuery(values)

		if f.HSCode == nil || *f.HSCode != "8471.30.01" {
			t.Errorf("HSCode = %v, want 8471.30.01", f.HSCode)
		}
		if f.CustomerName == nil || *f.CustomerName != "Acme Exports" {
			t.Errorf("CustomerName = %v, want Acme Exports", f.CustomerName)
		}
		if !f.DualUseOnly {
			t.Error("DualUseOnly = false, want true")
		}
	})

	t.Run("empty params yield zero filters", func(t *testing.T) {
		f := classifications.FiltersFromQuery(url.Values{})

		if f.HSCode != nil {
			t.Errorf("HSCode = %v, want nil", f.HSCode)
		}
		if f.CustomerName != nil {
			t.Errorf("CustomerName = %v, want nil", f.CustomerName)
		}
		if f.DualUseOnly {
			t.Error("DualUseOnly = true, want false")
		}
	})

	t.Run("invalid dual_use_only ignored", func(t *testing.T) {
		values := url.Values{"dual_use_only": {"maybe"}}
		f := classifications.FiltersFromQuery(values)

		if f.DualUseOnly {
			t.Error("DualUseOnly = true, want false for invalid bool")
		}
	})
}

func TestFiltersApply(t *testing.T) {
	proj := query.
		NewProjectionMap("public", "classifications", "c").
		Project("hs_code", "HSCode").
		Project("customer_name", "CustomerName").
		Project("is_dual_use", "IsDualUse")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := classifications.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT c.hs_code, c.customer_name, c.is_dual_use FROM public.classifications c"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("hs_code equals filter", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := classifications.Filters{HSCode: ptr("8471.30.01")}
		f.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "c.hs_code = $1") {
			t.Errorf("sql = %q, want hs_code equality", sql)
		}
		if len(args) != 1 {
			t.Fatalf("args = %v, want 1 arg", args)
		}
		if v, ok := args[0].(*string); !ok || *v != "8471.30.01" {
			t.Errorf("args[0] = %v, want *8471.30.01", args[0])
		}
	})

	t.Run("dual_use_only filter", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := classifications.Filters{DualUseOnly: true}
		f.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "c.is_dual_use = $1") {
			t.Errorf("sql = %q, want is_dual_use equality", sql)
		}
		if len(args) != 1 || args[0] != true {
			t.Errorf("args = %v, want [true]", args)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := classifications.Filters{
			HSCode:       ptr("8542.31.00"),
			CustomerName: ptr("Acme"),
			DualUseOnly:  true,
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 3 {
			t.Errorf("args length = %d, want 3", len(args))
		}
	})
}

func TestAggregate(t *testing.T) {
	t.Run("summarizes record set", func(t *testing.T) {
		rows := []classifications.StatRow{
			{Confidence: 80, IsDualUse: false, Chapter: "84 - Machinery and mechanical appliances"},
			{Confidence: 90, IsDualUse: true, Chapter: "84 - Machinery and mechanical appliances"},
			{Confidence: 100, IsDualUse: false, Chapter: "85 - Electrical machinery"},
		}

		stats := classifications.Aggregate(rows)

		if stats.Total != 3 {
			t.Errorf("Total = %d, want 3", stats.Total)
		}
		if stats.DualUseCount != 1 {
			t.Errorf("DualUseCount = %d, want 1", stats.DualUseCount)
		}
		if stats.AverageConfidence != 90 {
			t.Errorf("AverageConfidence = %d, want 90", stats.AverageConfidence)
		}
		if len(stats.TopChapters) != 2 {
			t.Fatalf("TopChapters length = %d, want 2", len(stats.TopChapters))
		}
		if stats.TopChapters[0].Chapter != "84" || stats.TopChapters[0].Count != 2 {
			t.Errorf("TopChapters[0] = %+v, want {84 2}", stats.TopChapters[0])
		}
		if stats.TopChapters[1].Chapter != "85" || stats.TopChapters[1].Count != 1 {
			t.Errorf("TopChapters[1] = %+v, want {85 1}", stats.TopChapters[1])
		}
	})

	t.Run("empty set yields zero statistics", func(t *testing.T) {
		stats := classifications.Aggregate(nil)

		if stats.Total != 0 {
			t.Errorf("Total = %d, want 0", stats.Total)
		}
		if stats.AverageConfidence != 0 {
			t.Errorf("AverageConfidence = %d, want 0", stats.AverageConfidence)
		}
		if stats.TopChapters == nil {
			t.Error("TopChapters = nil, want empty slice")
		}
		if len(stats.TopChapters) != 0 {
			t.Errorf("TopChapters length = %d, want 0", len(stats.TopChapters))
		}
	})

	t.Run("mean confidence rounds half up", func(t *testing.T) {
		rows := []classifications.StatRow{
			{Confidence: 85, Chapter: "84"},
			{Confidence: 86, Chapter: "84"},
		}

		stats := classifications.Aggregate(rows)
		if stats.AverageConfidence != 86 {
			t.Errorf("AverageConfidence = %d, want 86", stats.AverageConfidence)
		}
	})

	t.Run("chapter ranking caps at five buckets", func(t *testing.T) {
		var rows []classifications.StatRow
		for _, ch := range []string{"84", "85", "90", "28", "29", "39"} {
			rows = append(rows, classifications.StatRow{Confidence: 80, Chapter: ch})
		}
		rows = append(rows, classifications.StatRow{Confidence: 80, Chapter: "84"})

		stats := classifications.Aggregate(rows)

		if len(stats.TopChapters) != 5 {
			t.Fatalf("TopChapters length = %d, want 5", len(stats.TopChapters))
		}
		if stats.TopChapters[0].Chapter != "84" || stats.TopChapters[0].Count != 2 {
			t.Errorf("TopChapters[0] = %+v, want {84 2}", stats.TopChapters[0])
		}
	})

	t.Run("equal counts order by chapter", func(t *testing.T) {
		rows := []classifications.StatRow{
			{Confidence: 80, Chapter: "90 - Optical instruments"},
			{Confidence: 80, Chapter: "28 - Inorganic chemicals"},
			{Confidence: 80, Chapter: "84 - Machinery"},
		}

		stats := classifications.Aggregate(rows)

		want := []string{"28", "84", "90"}
		for i, chapter := range want {
			if stats.TopChapters[i].Chapter != chapter {
				t.Errorf("TopChapters[%d].Chapter = %q, want %q", i, stats.TopChapters[i].Chapter, chapter)
			}
		}
	})
}

func TestChapterBucket(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"labeled chapter", "84 - Machinery and mechanical appliances", "84"},
		{"bare chapter", "84", "84"},
		{"multiple separators cut at first", "84 - Nuclear reactors - boilers", "84"},
		{"surrounding spaces trimmed", "  84  - Machinery", "84"},
		{"no separator buckets whole label", "Chapter 84", "Chapter 84"},
		{"empty label", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifications.ChapterBucket(tt.label); got != tt.want {
				t.Errorf("ChapterBucket(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestExportCSV(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("renders header and rows", func(t *testing.T) {
		records := []classifications.Classification{
			{
				ProductName:  "Quad-core laptop",
				CustomerName: ptr("Acme Exports"),
				HSCode:       "8471.30.01",
				Chapter:      "84 - Machinery",
				Confidence:   92,
				IsDualUse:    true,
				CreatedAt:    created,
			},
			{
				ProductName: "USB cable",
				HSCode:      "8544.42.90",
				Chapter:     "85 - Electrical machinery",
				Confidence:  88,
				CreatedAt:   created,
			},
		}

		data, err := classifications.ExportCSV(records)
		if err != nil {
			t.Fatalf("ExportCSV: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("line count = %d, want 3", len(lines))
		}

		wantHeader := "Product Name,HS Code,Chapter,Confidence,Dual Use,Customer,Timestamp"
		if lines[0] != wantHeader {
			t.Errorf("header = %q, want %q", lines[0], wantHeader)
		}

		wantRow := "Quad-core laptop,8471.30.01,84 - Machinery,92%,Yes,Acme Exports,2025-03-14T09:30:00Z"
		if lines[1] != wantRow {
			t.Errorf("row = %q, want %q", lines[1], wantRow)
		}

		if !strings.Contains(lines[2], ",88%,No,,") {
			t.Errorf("row = %q, want nil customer rendered empty and dual use No", lines[2])
		}
	})

	t.Run("quotes fields containing commas", func(t *testing.T) {
		records := []classifications.Classification{
			{
				ProductName: "Laptop, ruggedized",
				HSCode:      "8471.30.01",
				Chapter:     "84 - Machinery",
				Confidence:  90,
				CreatedAt:   created,
			},
		}

		data, err := classifications.ExportCSV(records)
		if err != nil {
			t.Fatalf("ExportCSV: %v", err)
		}

		if !strings.Contains(string(data), `"Laptop, ruggedized"`) {
			t.Errorf("output = %q, want quoted product name", string(data))
		}
	})

	t.Run("empty set still renders header", func(t *testing.T) {
		data, err := classifications.ExportCSV(nil)
		if err != nil {
			t.Fatalf("ExportCSV: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Fatalf("line count = %d, want 1", len(lines))
		}
	})
}
