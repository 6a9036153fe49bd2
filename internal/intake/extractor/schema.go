package extractor

import "ai-task-planner/pkg/gemini"

// Field names of one extracted task.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDatetime    = "datetime"
	FieldTags        = "tags"
)

// Schema returns the structured-output schema sent with every extraction:
// an array of task objects.
func Schema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeArray,
		Items: &gemini.Schema{
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				FieldTitle:       {Type: gemini.TypeString},
				FieldDescription: {Type: gemini.TypeString},
				FieldDatetime:    {Type: gemini.TypeString, Nullable: true},
				FieldTags: {
					Type:  gemini.TypeArray,
					Items: &gemini.Schema{Type: gemini.TypeString},
				},
			},
		},
	}
}
