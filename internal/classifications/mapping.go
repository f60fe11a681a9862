package classifications

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/HIMANSHUIPE/HSClassification/internal/hscode"
	"github.com/HIMANSHUIPE/HSClassification/pkg/query"
	"github.com/HIMANSHUIPE/HSClassification/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "ID").
	Project("product_name", "ProductName").
	Project("customer_name", "CustomerName").
	Project("hs_code", "HSCode").
	Project("chapter", "Chapter").
	Project("description", "Description").
	Project("confidence", "Confidence").
	Project("is_dual_use", "IsDualUse").
	Project("reasoning", "Reasoning").
	Project("links", "Links").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored. HSCode and CustomerName use exact matching;
// DualUseOnly restricts results to dual-use records when true.
type Filters struct {
	HSCode       *string `json:"hs_code,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
	DualUseOnly  bool    `json:"dual_use_only,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("HSCode", f.HSCode).
		WhereEquals("CustomerName", f.CustomerName)

	if f.DualUseOnly {
		b.WhereEquals("IsDualUse", true)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("hs_code"); c != "" {
		f.HSCode = &c
	}

	if c := values.Get("customer_name"); c != "" {
		f.CustomerName = &c
	}

	if d := values.Get("dual_use_only"); d != "" {
		if v, err := strconv.ParseBool(d); err == nil {
			f.DualUseOnly = v
		}
	}

	return f
}

// applySearch routes a search term by shape: terms that look like an HS
// code match against the code column only; anything else matches across
// product name, customer name, and HS code.
func applySearch(b *query.Builder, search *string) {
	if search == nil {
		return
	}

	term := strings.TrimSpace(*search)
	if term == "" {
		return
	}

	if hscode.LooksLikeCode(term) {
		b.WhereContains("HSCode", &term)
		return
	}

	b.WhereSearch(&term, "ProductName", "CustomerName", "HSCode")
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	var linksRaw []byte

	err := s.Scan(
		&c.ID,
		&c.ProductName,
		&c.CustomerName,
		&c.HSCode,
		&c.Chapter,
		&c.Description,
		&c.Confidence,
		&c.IsDualUse,
		&c.Reasoning,
		&linksRaw,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		return c, err
	}

	if len(linksRaw) > 0 {
		var links hscode.Links
		if err := json.Unmarshal(linksRaw, &links); err != nil {
			return c, fmt.Errorf("unmarshal links: %w", err)
		}
		c.Links = &links
	}

	return c, nil
}

func scanStatRow(s repository.Scanner) (StatRow, error) {
	var row StatRow
	err := s.Scan(&row.Confidence, &row.IsDualUse, &row.Chapter)
	return row, err
}
