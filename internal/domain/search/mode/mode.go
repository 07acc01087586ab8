package mode

// Mode is the ranking strategy.
type Mode string

// Ranking mode constants.
const (
	// Hybrid combines lexical and semantic scores by weighted sum.
	Hybrid   Mode = "hybrid"
	Lexical  Mode = "lexical"
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Lexical || m == Semantic
}
