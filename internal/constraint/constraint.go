// Package constraint normalizes a raw filter request into typed constraint
// lists, one per filter dimension.
//
// The UI sends list dimensions as prefixed tokens ("sizes_Large"). An absent
// dimension, or a token that cannot be split, means "no restriction" for
// that entry; extraction never fails on shape.
package constraint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/bestiary/internal/ir"
)

// Request keys.
const (
	KeyEnvironments      = "environments"
	KeySizes             = "sizes"
	KeySources           = "sources"
	KeyCustomSourcesUsed = "customSourcesUsed"
	KeyTypes             = "types"
	KeyAlignments        = "alignments"
	KeyMinimumCR         = "minimumChallengeRating"
	KeyMaximumCR         = "maximumChallengeRating"
	KeyAllowLegendary    = "allowLegendary"
	KeyAllowNamed        = "allowNamed"
)

// Set holds the constraints of one filter request.
type Set struct {
	Environments []string
	Sizes        []string
	Sources      []string // sources and customSourcesUsed, in that order
	Types        []string
	Alignments   []string

	MinCR *string // nil = unbounded
	MaxCR *string // nil = unbounded

	AllowLegendary bool
	AllowNamed     bool
}

// HasCRRange reports whether either CR bound is set.
func (s Set) HasCRRange() bool {
	return s.MinCR != nil || s.MaxCR != nil
}

// IsEmpty reports whether the set places no restriction at all.
func (s Set) IsEmpty() bool {
	return len(s.Environments) == 0 &&
		len(s.Sizes) == 0 &&
		len(s.Sources) == 0 &&
		len(s.Types) == 0 &&
		len(s.Alignments) == 0 &&
		!s.HasCRRange() &&
		s.AllowLegendary &&
		s.AllowNamed
}

// ParseParams decodes the JSON params payload of a request. Empty or
// whitespace-only input is an empty request.
func ParseParams(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var params map[string]any
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("parse params: %w", err)
	}
	if params == nil {
		params = map[string]any{}
	}
	return params, nil
}

// Extract builds a Set from request params. Malformed tokens are dropped and
// logged at debug level.
func Extract(params map[string]any) Set {
	s := Set{
		Environments: tokens(params, KeyEnvironments),
		Sizes:        tokens(params, KeySizes),
		Sources:      append(tokens(params, KeySources), tokens(params, KeyCustomSourcesUsed)...),
		Types:        tokens(params, KeyTypes),
		Alignments:   tokens(params, KeyAlignments),
		MinCR:        label(params, KeyMinimumCR),
		MaxCR:        label(params, KeyMaximumCR),

		AllowLegendary: flag(params, KeyAllowLegendary),
		AllowNamed:     flag(params, KeyAllowNamed),
	}
	return s
}

// tokens strips the "<key>_" prefix from every entry of a list dimension.
func tokens(params map[string]any, key string) []string {
	raw, ok := params[key]
	if !ok || raw == nil {
		return []string{}
	}

	list, ok := raw.([]any)
	if !ok {
		if str, isStr := raw.([]string); isStr {
			list = make([]any, len(str))
			for i, v := range str {
				list[i] = v
			}
		} else {
			slog.Debug("dropping non-list filter dimension", "key", key, "type", fmt.Sprintf("%T", raw))
			return []string{}
		}
	}

	values := make([]string, 0, len(list))
	for _, entry := range list {
		tok, ok := entry.(string)
		if !ok {
			slog.Debug("dropping filter entry", "key", key, "error", ir.NewMalformedTokenError(fmt.Sprint(entry)))
			continue
		}
		value, ok := StripPrefix(tok)
		if !ok {
			slog.Debug("dropping filter entry", "key", key, "error", ir.NewMalformedTokenError(tok))
			continue
		}
		values = append(values, value)
	}
	return values
}

// StripPrefix splits a "<dimension>_<value>" token at its first underscore.
// The dimension part is not checked against the request key; the legacy UI
// tags default source selections "source_<name>". Returns false when there
// is no underscore, the dimension is empty or the value is blank.
func StripPrefix(token string) (string, bool) {
	prefix, value, found := strings.Cut(token, "_")
	if !found || prefix == "" || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// label reads a CR bound. Strings are trimmed; integral JSON numbers become
// their decimal label. Anything else is unset.
func label(params map[string]any, key string) *string {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			s = v.String()
		} else {
			s = strconv.FormatInt(n, 10)
		}
	case float64:
		if v != float64(int64(v)) {
			s = strconv.FormatFloat(v, 'f', -1, 64)
		} else {
			s = strconv.FormatInt(int64(v), 10)
		}
	case int:
		s = strconv.Itoa(v)
	default:
		slog.Debug("ignoring challenge rating bound", "key", key, "type", fmt.Sprintf("%T", raw))
		return nil
	}

	if s == "" {
		return nil
	}
	return &s
}

// flag reads a tri-state boolean. Only an explicit false restricts; the
// strings "false"/"true" from form-encoded clients count as booleans. Any
// other value is ignored and logged.
func flag(params map[string]any, key string) bool {
	raw, ok := params[key]
	if !ok || raw == nil {
		return true
	}

	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	slog.Debug("ignoring flag value", "key", key, "value", fmt.Sprint(raw), "type", fmt.Sprintf("%T", raw))
	return true
}
