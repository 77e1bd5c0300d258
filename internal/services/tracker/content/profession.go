package content

import "fmt"

// Profession is a character profession. The zero value means none.
type Profession string

const (
	ProfessionNone         Profession = ""
	ProfessionAssassin     Profession = "Assassin"
	ProfessionDervish      Profession = "Dervish"
	ProfessionElementalist Profession = "Elementalist"
	ProfessionMesmer       Profession = "Mesmer"
	ProfessionMonk         Profession = "Monk"
	ProfessionNecromancer  Profession = "Necromancer"
	ProfessionParagon      Profession = "Paragon"
	ProfessionRanger       Profession = "Ranger"
	ProfessionRitualist    Profession = "Ritualist"
	ProfessionWarrior      Profession = "Warrior"
)

// Professions lists every profession in alphabetical order.
var Professions = []Profession{
	ProfessionAssassin,
	ProfessionDervish,
	ProfessionElementalist,
	ProfessionMesmer,
	ProfessionMonk,
	ProfessionNecromancer,
	ProfessionParagon,
	ProfessionRanger,
	ProfessionRitualist,
	ProfessionWarrior,
}

// ParseProfession returns the profession with the exact given name.
func ParseProfession(value string) (Profession, error) {
	for _, p := range Professions {
		if string(p) == value {
			return p, nil
		}
	}
	return ProfessionNone, fmt.Errorf("unknown profession %q", value)
}

// ProfessionLock restricts which characters a profession quest applies to.
type ProfessionLock int

const (
	// LockAny: any character may take the quest.
	LockAny ProfessionLock = iota
	// LockPrimary: only characters whose primary profession matches.
	LockPrimary
	// LockUnlocked: characters that have unlocked the profession.
	LockUnlocked
)

func (l ProfessionLock) String() string {
	switch l {
	case LockAny:
		return "Any"
	case LockPrimary:
		return "Primary"
	case LockUnlocked:
		return "Unlocked"
	default:
		return fmt.Sprintf("ProfessionLock(%d)", int(l))
	}
}

// ParseProfessionLock maps the raw Profession_Lock value. Matching is exact.
func ParseProfessionLock(value string) (ProfessionLock, error) {
	switch value {
	case "Any":
		return LockAny, nil
	case "Primary":
		return LockPrimary, nil
	case "Unlocked":
		return LockUnlocked, nil
	default:
		return LockAny, fmt.Errorf("unsupported Profession_Lock %q", value)
	}
}
