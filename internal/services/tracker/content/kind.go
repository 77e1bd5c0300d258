package content

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four parallel content catalogs.
type Kind int

const (
	KindQuest Kind = iota + 1
	KindMission
	KindSkill
	KindVanquish
)

// Kinds lists every catalog kind in load order.
var Kinds = []Kind{KindQuest, KindMission, KindSkill, KindVanquish}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindQuest:
		return "Quest"
	case KindMission:
		return "Mission"
	case KindSkill:
		return "Skill"
	case KindVanquish:
		return "Vanquish"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Dir returns the content directory name holding this kind's files.
func (k Kind) Dir() string {
	switch k {
	case KindQuest:
		return "quests"
	case KindMission:
		return "missions"
	case KindSkill:
		return "skills"
	case KindVanquish:
		return "vanquish"
	default:
		return ""
	}
}

// ItemsKey returns the top-level record key holding the item collection.
func (k Kind) ItemsKey() string {
	switch k {
	case KindQuest:
		return "Quests"
	case KindMission:
		return "Missions"
	case KindSkill:
		return "Skills"
	case KindVanquish:
		return "Explorable Areas"
	default:
		return ""
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindQuest && k <= KindVanquish
}

// ParseKind accepts a kind name in any case, singular or plural.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "quest", "quests":
		return KindQuest, nil
	case "mission", "missions":
		return KindMission, nil
	case "skill", "skills":
		return KindSkill, nil
	case "vanquish", "vanquishes":
		return KindVanquish, nil
	default:
		return 0, fmt.Errorf("unknown content kind %q", value)
	}
}
