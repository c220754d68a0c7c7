package argument

import (
	"fmt"
	"math"
	"strings"
)

// componentCandidate and relationCandidate are the raw shapes the reasoning
// service returns before validation. Untyped fields let validation report a
// wrong-typed value instead of losing it to a decode error.
type componentCandidate map[string]any

type relationCandidate map[string]any

// validateComponentCandidate checks one raw component object and returns one
// message per problem. Enum matching is case-exact: variants like "EVIDENCE"
// or "evidence" are rejected rather than normalized, which keeps the output
// vocabulary closed.
func validateComponentCandidate(c componentCandidate, componentTypes []string) []string {
	var errs []string

	for _, field := range []string{"text", "type"} {
		if _, ok := c[field]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if raw, ok := c["text"]; ok {
		if s, ok := raw.(string); !ok {
			errs = append(errs, "'text' must be a string")
		} else if strings.TrimSpace(s) == "" {
			errs = append(errs, "'text' must be a non-empty string")
		}
	}

	if raw, ok := c["type"]; ok {
		t, _ := raw.(string)
		if !containsString(componentTypes, t) {
			errs = append(errs, fmt.Sprintf("Invalid type: %v. Must be one of %v", raw, componentTypes))
		}
	}

	if raw, ok := c["page"]; ok {
		if _, ok := asPositiveInt(raw); !ok {
			errs = append(errs, "'page' must be a positive integer")
		}
	}

	return errs
}

// validateRelationCandidate checks one raw relation object. Endpoint
// existence is not checked here; the graph rejects unknown endpoints when the
// edge is added.
func validateRelationCandidate(r relationCandidate, relationTypes []string) []string {
	var errs []string

	for _, field := range []string{"source", "target", "relation"} {
		raw, ok := r[field]
		if !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
			continue
		}
		if _, ok := raw.(string); !ok {
			errs = append(errs, fmt.Sprintf("'%s' must be a string", field))
		}
	}

	if raw, ok := r["relation"]; ok {
		rel, _ := raw.(string)
		if !containsString(relationTypes, rel) {
			errs = append(errs, fmt.Sprintf("Invalid relation: %v. Must be one of %v", raw, relationTypes))
		}
	}

	return errs
}

// asPositiveInt converts a decoded JSON value to a positive int. Numbers
// arrive as float64 from encoding/json, so integral floats are accepted.
func asPositiveInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 && v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
