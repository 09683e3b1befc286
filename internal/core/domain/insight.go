package domain

// DefaultTopic is assigned to insights whose text carries no recognizable
// topic label.
const DefaultTopic = "General"

// Insight is one synthesized point of the final report: a span of LLM
// output text with its supporting citations resolved against the source
// record stores. Insights preserve the order in which the LLM emitted
// them.
//
// The JSON field names are the artifact contract with the dashboard and
// must not change.
type Insight struct {
	// Topic is a short uppercase label extracted from the leading
	// "TOPIC: body" convention, or DefaultTopic.
	Topic string `json:"topic"`

	// Text is the display text with all citation markup removed.
	// Inline emphasis markup from the LLM output is preserved verbatim.
	Text string `json:"insight"`

	// Citations are the resolved citations for this insight, ordered by
	// citation ID. Never nil in a parsed report.
	Citations []EnrichedCitation `json:"citations"`

	// Count is len(Citations), recorded explicitly for the dashboard.
	Count int `json:"count"`
}
