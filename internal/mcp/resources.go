package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	URIFocus   = "leetboost://focus"
	URISolved  = "leetboost://solved"
	URICatalog = "leetboost://catalog"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         URIFocus,
		Name:        "Focus Tags",
		Description: "Saved focus tags used for recommendations",
		MimeType:    "text/plain",
	},
	{
		URI:         URISolved,
		Name:        "Solved Problems",
		Description: "Problem slugs saved by the last profile run",
		MimeType:    "text/plain",
	},
	{
		URI:         URICatalog,
		Name:        "Rating Catalog",
		Description: "Community rating catalog size and rating distribution",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
