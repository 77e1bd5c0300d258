package status

import (
	"fmt"
	"strings"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
)

const (
	separator = "::"
	prefixEnd = "!"

	prefixMission   = "Mission"
	prefixMissionHM = "Mission_HM"
	prefixSkill     = "Skill"
	prefixVanquish  = "Vanquish"
)

// Target addresses one trackable item.
type Target struct {
	Kind content.Kind
	Area string
	Item string
	// HardMode selects the hard mode key; only missions have one.
	HardMode bool
}

// Key returns the status key for an item. It never fails; hardMode is ignored
// for kinds other than missions.
func Key(kind content.Kind, area, item string, hardMode bool) string {
	base := area + separator + item
	switch kind {
	case content.KindMission:
		if hardMode {
			return prefixMissionHM + prefixEnd + base
		}
		return prefixMission + prefixEnd + base
	case content.KindSkill:
		return prefixSkill + prefixEnd + base
	case content.KindVanquish:
		return prefixVanquish + prefixEnd + base
	default:
		return base
	}
}

// Key returns the status key for t.
func (t Target) Key() string {
	return Key(t.Kind, t.Area, t.Item, t.HardMode)
}

// ParseKey splits a status key back into its target.
func ParseKey(key string) (Target, error) {
	kind := content.KindQuest
	hard := false
	rest := key
	if prefix, body, ok := strings.Cut(key, prefixEnd); ok {
		switch prefix {
		case prefixMission:
			kind = content.KindMission
		case prefixMissionHM:
			kind, hard = content.KindMission, true
		case prefixSkill:
			kind = content.KindSkill
		case prefixVanquish:
			kind = content.KindVanquish
		default:
			return Target{}, fmt.Errorf("status key %q: unknown prefix %q", key, prefix)
		}
		rest = body
	}
	area, item, ok := strings.Cut(rest, separator)
	if !ok {
		return Target{}, fmt.Errorf("status key %q: missing %q separator", key, separator)
	}
	if area == "" || item == "" || strings.Contains(item, separator) {
		return Target{}, fmt.Errorf("status key %q: malformed area or item", key)
	}
	return Target{Kind: kind, Area: area, Item: item, HardMode: hard}, nil
}
