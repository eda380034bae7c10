package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a filter slot.
type ID uint8

// Built-in identifiers with fixed values across releases.
const (
	NoFilter   ID = 0
	Shuffle    ID = 1
	BitShuffle ID = 2
	Delta      ID = 3
	TruncPrec  ID = 4

	// LastBuiltin is the exclusive upper bound of the low built-in range.
	LastBuiltin ID = 5
)

// Registry-backed identifiers.
const (
	// GlobalRegisteredStart is the first identifier accepted by Register.
	GlobalRegisteredStart ID = 32

	NDCell    ID = 32
	NDMean    ID = 33
	ByteDelta ID = 34

	// UserRegisteredStart is the first identifier intended for user plugins.
	UserRegisteredStart ID = 160
)

// MaxFilters is the number of slots in a pipeline.
const MaxFilters = 6

var idNames = map[ID]string{
	NoFilter:   "nofilter",
	Shuffle:    "shuffle",
	BitShuffle: "bitshuffle",
	Delta:      "delta",
	TruncPrec:  "truncprec",
	NDCell:     "ndcell",
	NDMean:     "ndmean",
	ByteDelta:  "bytedelta",
}

func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "filter" + strconv.Itoa(int(id))
}

// ParseID resolves a filter name (as printed by ID.String) or a decimal
// identifier.
func ParseID(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, name := range idNames {
		if name == s {
			return id, nil
		}
	}
	num := strings.TrimPrefix(s, "filter")
	v, err := strconv.ParseUint(num, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return ID(v), nil
}

// dispatched reports whether id runs on the transposition kernels rather
// than through the registry.
func (id ID) dispatched() bool {
	return id == Shuffle || id == BitShuffle
}
