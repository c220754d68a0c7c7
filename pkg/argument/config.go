package argument

import (
	"fmt"
	"time"
)

// Config carries everything the extraction pipeline needs to run against one
// document. The type lists are injected rather than hardcoded so tests and
// deployments can narrow or extend the vocabulary without touching the
// pipeline.
type Config struct {
	// PagesPerChunk is the number of pages processed together in one pair
	// of extraction calls.
	PagesPerChunk int

	// MaxChunkTokens caps the combined chunk text passed to the reasoning
	// service. Zero disables the cap.
	MaxChunkTokens int

	// TokenEncoder selects the tiktoken encoding used for the chunk cap.
	TokenEncoder string

	// ComponentTypes and RelationTypes are the allowed enum literals.
	// Candidate values must match case-exactly; variants are rejected.
	ComponentTypes []string
	RelationTypes  []string

	// Model overrides the reasoning client's default model when non-empty.
	Model string

	// MaxRetries bounds reasoning-service attempts per extraction step.
	MaxRetries int

	// RetryBaseDelay is the initial backoff between retries; it doubles
	// after each failed attempt.
	RetryBaseDelay time.Duration
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		PagesPerChunk:  35,
		MaxChunkTokens: 12000,
		TokenEncoder:   "o200k_base",
		ComponentTypes: DefaultComponentTypes(),
		RelationTypes:  DefaultRelationTypes(),
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// Validate checks the configuration before any chunk processing begins.
// Configuration problems are the only errors that abort a whole run, so they
// are surfaced eagerly and all at once.
func (c Config) Validate() error {
	var problems []string

	if c.PagesPerChunk <= 0 {
		problems = append(problems, "PagesPerChunk must be positive")
	}
	if c.MaxChunkTokens < 0 {
		problems = append(problems, "MaxChunkTokens must not be negative")
	}
	if len(c.ComponentTypes) == 0 {
		problems = append(problems, "ComponentTypes must not be empty")
	}
	if len(c.RelationTypes) == 0 {
		problems = append(problems, "RelationTypes must not be empty")
	}
	for _, t := range c.ComponentTypes {
		if t == "" {
			problems = append(problems, "ComponentTypes must not contain empty strings")
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid extraction config: %v", problems)
	}
	return nil
}
