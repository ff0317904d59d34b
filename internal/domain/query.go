package domain

// QueryType is the coarse kind of a question or topic, decided by its
// starter word.
type QueryType string

const (
	QueryDescriptive  QueryType = "descriptive"
	QueryEntity       QueryType = "entity"
	QueryTemporal     QueryType = "temporal"
	QueryLocation     QueryType = "location"
	QueryReasoning    QueryType = "reasoning"
	QueryProcess      QueryType = "process"
	QuerySelection    QueryType = "selection"
	QueryVerification QueryType = "verification"
	QueryDefinition   QueryType = "definition"
	QueryExplanation  QueryType = "explanation"
	QueryComparison   QueryType = "comparison"
	QueryEnumeration  QueryType = "enumeration"
	QueryGeneral      QueryType = "general"
)
