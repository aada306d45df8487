package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"pnc-buildconfig/internal/shared"
)

// splitFields splits a list option on whitespace.
func splitFields(value string) []string {
	return strings.Fields(value)
}

// splitOrderedSet splits on whitespace and drops repeated names.
func splitOrderedSet(value string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, field := range strings.Fields(value) {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out
}

// parseKeyValues parses "k=v[,k=v...]" where newlines act as separators and
// a backslash escapes the next character. Entries without '=' are kept with
// an empty value and logged. Values are returned unquoted.
func parseKeyValues(ctx context.Context, section, option, raw string) map[string]string {
	out := map[string]string{}
	entries := shared.SplitUnescape(strings.ReplaceAll(raw, "\n", ","), ',', '\\')
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || entry == `\` {
			continue
		}
		key, value, found := strings.Cut(entry, "=")
		if !found {
			log.Ctx(ctx).Warn().
				Str("section", section).
				Str("option", option).
				Str("entry", entry).
				Msg("entry has no value")
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

func quoteValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = shared.Quote(v)
	}
	return out
}

// unquote strips one pair of surrounding double quotes.
func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}
