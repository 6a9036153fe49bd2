package extractor

import (
	"encoding/json"
	"strings"
	"time"

	"ai-task-planner/internal/intake"
	"ai-task-planner/pkg/datemath"
)

// Normalizer decodes untrusted model output into complete candidates.
type Normalizer struct {
	parser *datemath.Parser
}

// NewNormalizer creates a Normalizer resolving datetimes with parser.
func NewNormalizer(parser *datemath.Parser) *Normalizer {
	return &Normalizer{parser: parser}
}

// Normalize converts each raw element into a CandidateTask. It never fails:
// a bad datetime becomes nil, bad tags become empty, a missing description
// takes the title. Elements that are not JSON objects are dropped.
func (n *Normalizer) Normalize(raw []json.RawMessage, ref time.Time) []intake.CandidateTask {
	out := make([]intake.CandidateTask, 0, len(raw))
	for _, item := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}

		c := intake.CandidateTask{
			Title:       stringField(fields[FieldTitle]),
			Description: stringField(fields[FieldDescription]),
			Tags:        tagsField(fields[FieldTags]),
		}
		if strings.TrimSpace(c.Description) == "" {
			c.Description = c.Title
		}
		if s := stringField(fields[FieldDatetime]); s != "" {
			if res, ok := n.parser.ParseDateTime(s, ref); ok {
				dt := res.AbsoluteTime
				c.Datetime = &dt
			}
		}
		out = append(out, c)
	}
	return out
}

// stringField returns the value when it is a JSON string, otherwise "".
func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// tagsField keeps the string members of a JSON array. Anything else is empty.
func tagsField(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			tags = append(tags, s)
		}
	}
	return tags
}
