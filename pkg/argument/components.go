package argument

// Component represents a typed, page-attributed span of argumentative text
// extracted from a paper. IDs follow the form P{page}-{TypeInitial}{n}
// (e.g. "P3-C2" for the second claim first seen on page 3) and are assigned
// once by the extraction pipeline, then never change.
type Component struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
	Page int    `json:"page"`
}

// Relation represents a typed, directed logical connection between two
// components. Page is the later of the two endpoint pages, the point in the
// document where the connection is fully established.
type Relation struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
	Page     int    `json:"page"`
}

// DefaultComponentTypes are the component categories the extraction prompt
// offers the model. Matching is case-exact everywhere.
func DefaultComponentTypes() []string {
	return []string{
		"Claim",
		"Evidence",
		"Conclusion",
		"Counterclaim",
		"Background",
		"Method",
		"Result",
		"Limitation",
	}
}

// DefaultRelationTypes are the relation categories the extraction prompt
// offers the model. Matching is case-exact everywhere.
func DefaultRelationTypes() []string {
	return []string{
		"supported_by",
		"contradicted_by",
		"leads_to",
		"elaborates",
		"addresses",
		"compares_to",
		"builds_on",
		"motivates",
		"demonstrates",
	}
}
