package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseConfig parses a comma separated slot list such as
// "shuffle:4,bytedelta" or "truncprec:-10,bitshuffle". Each slot is a filter
// name or decimal id, optionally followed by ":meta" in 0..255. Only
// TruncPrec metadata may be negative; it is stored as its two's complement
// byte.
func ParseConfig(s string) (Config, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Config{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxFilters {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFilters, len(parts), MaxFilters)
	}

	cfg := make(Config, 0, len(parts))
	for _, part := range parts {
		name, metaStr, hasMeta := strings.Cut(strings.TrimSpace(part), ":")
		id, err := ParseID(name)
		if err != nil {
			return nil, err
		}
		var meta uint8
		if hasMeta {
			lo := int64(0)
			if id == TruncPrec {
				lo = -128
			}
			v, err := strconv.ParseInt(strings.TrimSpace(metaStr), 10, 16)
			if err != nil || v < lo || v > 255 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidMeta, part)
			}
			meta = uint8(v)
		}
		cfg = append(cfg, Slot{ID: id, Meta: meta})
	}
	return cfg, nil
}

// String formats the configuration in the form accepted by ParseConfig.
func (c Config) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		switch {
		case s.Meta == 0:
			parts[i] = s.ID.String()
		case s.ID == TruncPrec:
			parts[i] = fmt.Sprintf("%s:%d", s.ID, int8(s.Meta))
		default:
			parts[i] = fmt.Sprintf("%s:%d", s.ID, s.Meta)
		}
	}
	return strings.Join(parts, ",")
}
