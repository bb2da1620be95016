package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var problemProperty = map[string]interface{}{
	"type":        "string",
	"description": "Problem slug (e.g. two-sum) or problem URL",
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "get_problem_rating",
		Description: "Look up the community contest rating of a problem.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"problem": problemProperty,
			},
			"required": []string{"problem"},
		},
	},
	{
		Name:        "recommend_problems",
		Description: "Recommend unsolved problems near a target rating for the given tags. Results are ordered by signed distance from the target with distances below it doubled, so easier warm-ups come first and harder stretches follow.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"target_rating": map[string]interface{}{
					"type":        "integer",
					"description": "Rating to aim for, usually the median of solved problems",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Topic tag names (default: saved focus tags)",
				},
				"cap": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (default: 12)",
				},
			},
			"required": []string{"target_rating"},
		},
	},
	{
		Name:        "similar_problems",
		Description: "Find unsolved problems that share a problem's main tags and sit close to its rating.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"problem": problemProperty,
			},
			"required": []string{"problem"},
		},
	},
	{
		Name:        "get_focus_tags",
		Description: "Get the saved focus tags.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "set_focus_tags",
		Description: "Replace the saved focus tags, or toggle a single tag.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "New focus tag set",
				},
				"toggle": map[string]interface{}{
					"type":        "string",
					"description": "Add this tag if absent, remove it if present",
				},
			},
		},
	},
}
