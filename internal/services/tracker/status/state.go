package status

import (
	"errors"
	"fmt"
	"slices"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
)

// Clear is the state written when a status is reset. The row stays in the
// table; only its state is emptied.
const Clear = ""

// Quest states.
const (
	QuestActive   = "Active"
	QuestComplete = "Complete"
	QuestDone     = "Done"
	QuestNA       = "N/A"
)

// Mission states, shared by normal and hard mode.
const (
	MissionStandard = "Standard"
	MissionExpert   = "Expert"
	MissionMaster   = "Master"
)

// Skill states.
const (
	SkillUnlocked = "Unlocked"
	SkillKnown    = "Known"
)

// Vanquish states.
const VanquishDone = "Done"

// ErrInvalidState is returned when a state is not accepted for the key's kind.
var ErrInvalidState = errors.New("invalid status state")

var validStates = map[content.Kind][]string{
	content.KindQuest:    {Clear, QuestActive, QuestComplete, QuestDone, QuestNA},
	content.KindMission:  {Clear, MissionStandard, MissionExpert, MissionMaster},
	content.KindSkill:    {Clear, SkillUnlocked, SkillKnown},
	content.KindVanquish: {Clear, VanquishDone},
}

// ValidStates returns the states accepted for kind, including Clear, in menu order.
func ValidStates(kind content.Kind) []string {
	return slices.Clone(validStates[kind])
}

// ValidateState checks state against the kind encoded in key.
func ValidateState(key, state string) error {
	target, err := ParseKey(key)
	if err != nil {
		return err
	}
	if !slices.Contains(validStates[target.Kind], state) {
		return fmt.Errorf("%w: %q is not a %s state", ErrInvalidState, state, target.Kind)
	}
	return nil
}
