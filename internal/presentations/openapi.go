package presentations

import (
	"github.com/JaimeStill/slide-lab/pkg/openapi"
)

type spec struct {
	List                *openapi.Operation
	Create              *openapi.Operation
	Find                *openapi.Operation
	Update              *openapi.Operation
	Delete              *openapi.Operation
	View                *openapi.Operation
	Duplicate           *openapi.Operation
	Share               *openapi.Operation
	Preview             *openapi.Operation
	Assemble            *openapi.Operation
	Generate            *openapi.Operation
	Outline             *openapi.Operation
	GenerateFromOutline *openapi.Operation
}

var userHeader = openapi.HeaderParam("X-User-ID", "Caller identity forwarded by the credential layer", false)

var generationFailures = map[int]*openapi.Response{
	400: openapi.ResponseRef("BadRequest"),
	403: openapi.ResponseRef("Forbidden"),
	422: openapi.ResponseRef("UnprocessableEntity"),
	502: openapi.ResponseRef("BadGateway"),
	504: openapi.ResponseRef("GatewayTimeout"),
}

func withFailures(status int, ok *openapi.Response) map[int]*openapi.Response {
	out := map[int]*openapi.Response{status: ok}
	for code, r := range generationFailures {
		out[code] = r
	}
	return out
}

// Spec contains OpenAPI operation definitions for all presentation endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List presentations",
		Description: "Returns a paginated list of the caller's presentations",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches title and description)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("title", "string", "Filter by title (contains)", false),
			openapi.QueryParam("is_public", "boolean", "Filter by visibility", false),
			userHeader,
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of presentations", "PresentationPageResult"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create presentation",
		Description: "Creates an empty presentation owned by the caller",
		Parameters:  []*openapi.Parameter{userHeader},
		RequestBody: openapi.RequestBodyJSON("CreatePresentationCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Presentation created", "Presentation"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get presentation",
		Description: "Returns the presentation with its slides in slide_number order",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Presentation detail", "PresentationDetail"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update presentation",
		Description: "Replaces the metadata fields present in the body",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("UpdatePresentationCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Presentation updated", "Presentation"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete presentation",
		Description: "Removes the presentation with its slides and chat history",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			204: {Description: "Presentation deleted"},
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	View: &openapi.Operation{
		Summary:     "View presentation",
		Description: "Returns the presentation detail. Views of public presentations increment view_count",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Presentation detail", "PresentationDetail"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Duplicate: &openapi.Operation{
		Summary:     "Duplicate presentation",
		Description: "Copies the presentation and every slide under new ids",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Presentation copy", "PresentationDetail"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Share: &openapi.Operation{
		Summary:     "Share presentation",
		Description: "Makes the presentation public and issues a new share token. Earlier links stop working",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Share link", "ShareLink"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Preview: &openapi.Operation{
		Summary:     "Preview presentation",
		Description: "Returns the presentation detail to its owner or to a holder of the share token, and counts the view",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Presentation UUID"),
			openapi.QueryParam("token", "string", "Share token from the share link", false),
			userHeader,
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Presentation detail", "PresentationDetail"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Assemble: &openapi.Operation{
		Summary:     "Assemble presentation",
		Description: "Parses raw generated text in full-mode format and stores the result as one batch",
		Parameters:  []*openapi.Parameter{userHeader},
		RequestBody: openapi.RequestBodyJSON("AssembleCommand", true),
		Responses:   withFailures(201, openapi.ResponseJSON("Presentation assembled", "PresentationDetail")),
	},
	Generate: &openapi.Operation{
		Summary:     "Generate presentation",
		Description: "Generates a complete presentation for a topic. slide_count is clamped to [5,15]",
		Parameters:  []*openapi.Parameter{userHeader},
		RequestBody: openapi.RequestBodyJSON("GenerateCommand", true),
		Responses:   withFailures(201, openapi.ResponseJSON("Presentation generated", "PresentationDetail")),
	},
	Outline: &openapi.Operation{
		Summary:     "Generate outline",
		Description: "Generates a slide outline for review. Nothing is stored",
		RequestBody: openapi.RequestBodyJSON("OutlineCommand", true),
		Responses:   withFailures(200, openapi.ResponseJSON("Generated outline", "Outline")),
	},
	GenerateFromOutline: &openapi.Operation{
		Summary:     "Generate from outline",
		Description: "Expands each outline item into slide content in parallel and stores the presentation",
		Parameters:  []*openapi.Parameter{userHeader},
		RequestBody: openapi.RequestBodyJSON("FromOutlineCommand", true),
		Responses:   withFailures(201, openapi.ResponseJSON("Presentation generated", "PresentationDetail")),
	},
}

var presentationProperties = map[string]*openapi.Schema{
	"id":            {Type: "string", Format: "uuid"},
	"owner_id":      {Type: "string"},
	"title":         {Type: "string"},
	"description":   {Type: "string"},
	"template_id":   {Type: "string"},
	"thumbnail_url": {Type: "string"},
	"slide_ids":     {Type: "array", Items: &openapi.Schema{Type: "string", Format: "uuid"}},
	"is_public":     {Type: "boolean"},
	"view_count":    {Type: "integer"},
	"created_at":    {Type: "string", Format: "date-time"},
	"updated_at":    {Type: "string", Format: "date-time"},
}

func detailProperties() map[string]*openapi.Schema {
	out := make(map[string]*openapi.Schema, len(presentationProperties)+1)
	for k, v := range presentationProperties {
		out[k] = v
	}
	out["slides"] = &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Slide")}
	return out
}

// Schemas defines the presentation component schemas.
var Schemas = map[string]*openapi.Schema{
	"Presentation": {
		Type:       "object",
		Properties: presentationProperties,
	},
	"PresentationDetail": {
		Type:       "object",
		Properties: detailProperties(),
	},
	"PresentationPageResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Presentation")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	},
	"CreatePresentationCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":       {Type: "string", Example: "Quarterly Review"},
			"description": {Type: "string"},
			"template_id": {Type: "string"},
			"is_public":   {Type: "boolean"},
		},
		Required: []string{"title"},
	},
	"UpdatePresentationCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":         {Type: "string"},
			"description":   {Type: "string"},
			"template_id":   {Type: "string"},
			"thumbnail_url": {Type: "string"},
			"is_public":     {Type: "boolean"},
		},
	},
	"ShareLink": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"share_token": {Type: "string"},
			"share_link":  {Type: "string"},
			"is_public":   {Type: "boolean"},
		},
	},
	"AssembleCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"content": {Type: "string", Description: "Generated text, optionally inside a fenced block"},
		},
		Required: []string{"content"},
	},
	"GenerateCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"topic":              {Type: "string", Example: "Renewable energy storage"},
			"audience":           {Type: "string", Example: "general"},
			"tone":               {Type: "string", Example: "professional"},
			"slide_count":        {Type: "integer", Minimum: ptr(MinSlides), Maximum: ptr(MaxSlides)},
			"additional_context": {Type: "string"},
		},
		Required: []string{"topic"},
	},
	"OutlineCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"topic":       {Type: "string"},
			"slide_count": {Type: "integer", Minimum: ptr(MinSlides), Maximum: ptr(MaxSlides)},
		},
		Required: []string{"topic"},
	},
	"OutlineItem": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":       {Type: "string"},
			"description": {Type: "string"},
			"layout":      {Type: "string"},
		},
		Required: []string{"title"},
	},
	"Outline": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"topic":   {Type: "string"},
			"outline": {Type: "array", Items: openapi.SchemaRef("OutlineItem")},
		},
	},
	"FromOutlineCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":    {Type: "string", Description: "Defaults to the outline topic"},
			"audience": {Type: "string"},
			"outline":  openapi.SchemaRef("Outline"),
		},
		Required: []string{"outline"},
	},
}

func ptr(n int) *float64 {
	f := float64(n)
	return &f
}
