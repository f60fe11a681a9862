package api

import (
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/internal/config"
	"github.com/HIMANSHUIPE/HSClassification/pkg/openapi"
)

// Spec builds the OpenAPI document describing the API surface.
func Spec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)

	base := cfg.API.BasePath
	addSchemas(spec)
	addClassificationPaths(spec, base)
	addPortfolioPaths(spec, base)
	addPromptPaths(spec, base)

	return spec
}

func addSchemas(spec *openapi.Spec) {
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Links": {
			Type:        "object",
			Description: "Reference links for an HS code",
			Properties: map[string]*openapi.Schema{
				"portal":   {Type: "string", Format: "uri"},
				"chapter":  {Type: "string", Format: "uri"},
				"detailed": {Type: "string", Format: "uri"},
				"search":   {Type: "string", Format: "uri"},
			},
		},
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"product_name":  {Type: "string"},
				"customer_name": {Type: "string"},
				"hs_code":       {Type: "string", Example: "8471.30.01"},
				"chapter":       {Type: "string", Example: "84 - Machinery and mechanical appliances"},
				"description":   {Type: "string"},
				"confidence":    {Type: "integer", Minimum: f(0), Maximum: f(100)},
				"is_dual_use":   {Type: "boolean"},
				"reasoning":     {Type: "string"},
				"links":         openapi.SchemaRef("Links"),
				"created_at":    {Type: "string", Format: "date-time"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"ClassifyRequest": {
			Type:     "object",
			Required: []string{"description"},
			Properties: map[string]*openapi.Schema{
				"description":   {Type: "string", Description: "Product description to classify"},
				"customer_name": {Type: "string"},
			},
		},
		"ClassifyResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"classification": openapi.SchemaRef("Classification"),
				"stored":         {Type: "boolean", Description: "Whether the classification was persisted"},
				"store_error":    {Type: "string", Description: "Persistence failure detail when stored is false"},
			},
		},
		"CreateClassification": {
			Type:     "object",
			Required: []string{"product_name", "hs_code", "chapter", "description"},
			Properties: map[string]*openapi.Schema{
				"product_name":  {Type: "string"},
				"customer_name": {Type: "string"},
				"hs_code":       {Type: "string"},
				"chapter":       {Type: "string"},
				"description":   {Type: "string"},
				"confidence":    {Type: "integer"},
				"is_dual_use":   {Type: "boolean"},
				"reasoning":     {Type: "string"},
			},
		},
		"UpdateClassification": {
			Type:        "object",
			Description: "Partial update; absent fields are left unchanged",
			Properties: map[string]*openapi.Schema{
				"product_name":  {Type: "string"},
				"customer_name": {Type: "string"},
				"hs_code":       {Type: "string"},
				"chapter":       {Type: "string"},
				"description":   {Type: "string"},
				"confidence":    {Type: "integer"},
				"is_dual_use":   {Type: "boolean"},
				"reasoning":     {Type: "string"},
			},
		},
		"ClassificationPage": pageSchema("Classification"),
		"ClassificationSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":          {Type: "integer"},
				"page_size":     {Type: "integer"},
				"search":        {Type: "string", Description: "Product text or HS code prefix"},
				"sort":          {Type: "string"},
				"hs_code":       {Type: "string"},
				"customer_name": {Type: "string"},
				"dual_use_only": {Type: "boolean"},
			},
		},
		"ChapterCount": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"chapter": {Type: "string", Example: "84"},
				"count":   {Type: "integer"},
			},
		},
		"Statistics": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":              {Type: "integer"},
				"dual_use_count":     {Type: "integer"},
				"average_confidence": {Type: "integer"},
				"top_chapters": {
					Type:  "array",
					Items: openapi.SchemaRef("ChapterCount"),
				},
			},
		},
		"AnalyzeRequest": {
			Type:     "object",
			Required: []string{"company"},
			Properties: map[string]*openapi.Schema{
				"company": {Type: "string", Description: "Company name to analyze"},
			},
		},
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"product_name": {Type: "string"},
				"category":     {Type: "string"},
				"hs_code":      {Type: "string"},
				"chapter":      {Type: "string"},
				"description":  {Type: "string"},
				"confidence":   {Type: "integer"},
				"is_dual_use":  {Type: "boolean"},
				"reasoning":    {Type: "string"},
				"links":        openapi.SchemaRef("Links"),
			},
		},
		"Portfolio": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"company":    {Type: "string"},
				"industry":   {Type: "string"},
				"risk_level": {Type: "string", Enum: []any{"Low", "Medium", "High"}},
				"products": {
					Type:  "array",
					Items: openapi.SchemaRef("Product"),
				},
			},
		},
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"stage":        {Type: "string", Enum: []any{"classify", "portfolio"}},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
				"active":       {Type: "boolean"},
			},
		},
		"CreatePrompt": {
			Type:     "object",
			Required: []string{"name", "stage", "instructions"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"stage":        {Type: "string", Enum: []any{"classify", "portfolio"}},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
			},
		},
		"PromptPage": pageSchema("Prompt"),
		"PromptSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string"},
				"stage":     {Type: "string", Enum: []any{"classify", "portfolio"}},
				"name":      {Type: "string"},
				"active":    {Type: "boolean"},
			},
		},
		"StageContent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"stage":   {Type: "string"},
				"content": {Type: "string"},
			},
		},
	})
}

func addClassificationPaths(spec *openapi.Spec, base string) {
	spec.Paths[base+"/classifications"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List classifications",
			Tags:       []string{"classifications"},
			Parameters: listParams(),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Classification page", "ClassificationPage"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a classification record directly",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("CreateClassification", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:    openapi.ResponseJSON("Created classification", "Classification"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths[base+"/classifications/classify"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Classify a product description",
			Description: "Runs the completion pipeline and stores the result. Returns 200 with stored=false when persistence fails after retries.",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("ClassifyRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:    openapi.ResponseJSON("Classification stored", "ClassifyResult"),
				http.StatusOK:         openapi.ResponseJSON("Classification produced but not stored", "ClassifyResult"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
				http.StatusBadGateway: openapi.ResponseRef("BadGateway"),
			},
		},
	}

	spec.Paths[base+"/classifications/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search classifications",
			Description: "Numeric HS-shaped search terms match hs_code; free text matches product and customer names.",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("ClassificationSearch", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Classification page", "ClassificationPage"),
			},
		},
	}

	spec.Paths[base+"/classifications/statistics"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Aggregate statistics over stored classifications",
			Tags:    []string{"classifications"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Statistics", "Statistics"),
			},
		},
	}

	spec.Paths[base+"/classifications/export"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Export classifications as CSV",
			Description: "Streams the full filtered result set; pagination does not apply.",
			Tags:        []string{"classifications"},
			Parameters: append(filterParams(),
				openapi.QueryParam("search", "string", "Product text or HS code prefix", false),
				openapi.QueryParam("sort", "string", "Comma-separated sort fields; prefix with - for descending", false),
			),
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "CSV document",
					Content: map[string]*openapi.MediaType{
						"text/csv": {Schema: &openapi.Schema{Type: "string"}},
					},
				},
			},
		},
	}

	spec.Paths[base+"/classifications/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a classification by ID",
			Tags:       []string{"classifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Classification", "Classification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Update a classification",
			Tags:        []string{"classifications"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			RequestBody: openapi.RequestBodyJSON("UpdateClassification", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Updated classification", "Classification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:     "Delete a classification",
			Description: "Deleting an absent record succeeds.",
			Tags:        []string{"classifications"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Deleted"},
			},
		},
	}
}

func addPortfolioPaths(spec *openapi.Spec, base string) {
	spec.Paths[base+"/portfolio/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Analyze a company's likely product portfolio",
			Tags:        []string{"portfolio"},
			RequestBody: openapi.RequestBodyJSON("AnalyzeRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Portfolio analysis", "Portfolio"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
				http.StatusBadGateway: openapi.ResponseRef("BadGateway"),
			},
		},
	}
}

func addPromptPaths(spec *openapi.Spec, base string) {
	spec.Paths[base+"/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List prompts",
			Tags:       []string{"prompts"},
			Parameters: pageParams(),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Prompt page", "PromptPage"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a prompt",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("CreatePrompt", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:  openapi.ResponseJSON("Created prompt", "Prompt"),
				http.StatusConflict: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths[base+"/prompts/stages"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List pipeline stages",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "Stage names",
					Content: map[string]*openapi.MediaType{
						"application/json": {Schema: &openapi.Schema{
							Type:  "array",
							Items: &openapi.Schema{Type: "string"},
						}},
					},
				},
			},
		},
	}

	spec.Paths[base+"/prompts/{stage}/instructions"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Resolve active instructions for a stage",
			Description: "Returns the active stored prompt for the stage, falling back to the built-in default.",
			Tags:        []string{"prompts"},
			Parameters: []*openapi.Parameter{{
				Name: "stage", In: "path", Required: true,
				Schema: &openapi.Schema{Type: "string", Enum: []any{"classify", "portfolio"}},
			}},
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Stage instructions", "StageContent"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths[base+"/prompts/{stage}/spec"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Output contract for a stage",
			Tags:    []string{"prompts"},
			Parameters: []*openapi.Parameter{{
				Name: "stage", In: "path", Required: true,
				Schema: &openapi.Schema{Type: "string", Enum: []any{"classify", "portfolio"}},
			}},
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Stage output contract", "StageContent"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths[base+"/prompts/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search prompts",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("PromptSearch", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Prompt page", "PromptPage"),
			},
		},
	}

	spec.Paths[base+"/prompts/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a prompt by ID",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Update a prompt",
			Tags:        []string{"prompts"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			RequestBody: openapi.RequestBodyJSON("CreatePrompt", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Updated prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
				http.StatusConflict: openapi.ResponseRef("Conflict"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a prompt",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Deleted"},
				http.StatusNotFound:  openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths[base+"/prompts/{id}/activate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Activate a prompt",
			Description: "Activating a prompt deactivates any other prompt on the same stage.",
			Tags:        []string{"prompts"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Activated prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths[base+"/prompts/{id}/deactivate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Deactivate a prompt",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Deactivated prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func pageSchema(itemSchema string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef(itemSchema)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}

func pageParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Search query", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields; prefix with - for descending", false),
	}
}

func filterParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("hs_code", "string", "Exact HS code filter", false),
		openapi.QueryParam("customer_name", "string", "Exact customer filter", false),
		openapi.QueryParam("dual_use_only", "boolean", "Restrict to dual-use classifications", false),
	}
}

func listParams() []*openapi.Parameter {
	return append(pageParams(), filterParams()...)
}

func f(v float64) *float64 {
	return &v
}
