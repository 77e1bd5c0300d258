package display

import "github.com/louisbranch/gwtrack/internal/services/tracker/content"

// Icon is a short text marker standing in for an image in terminal output.
type Icon struct {
	Key   string
	Glyph string
	Label string
}

// Icon keys that are not profession or character type names.
const (
	IconPrimaryQuest    = "q_pri"
	IconRepeatableQuest = "q_rep"
)

// Icons maps icon keys to their markers. Build one with NewIcons and pass it
// to whatever renders; lookups of unknown keys return the zero Icon.
type Icons map[string]Icon

// NewIcons returns the quest, profession, and character type markers.
func NewIcons() Icons {
	icons := Icons{}
	add := func(key, glyph, label string) {
		icons[key] = Icon{Key: key, Glyph: glyph, Label: label}
	}

	add(IconPrimaryQuest, "*", "Primary quest")
	add(IconRepeatableQuest, "R", "Repeatable")

	professionGlyphs := map[content.Profession]string{
		content.ProfessionAssassin:     "A",
		content.ProfessionDervish:      "D",
		content.ProfessionElementalist: "E",
		content.ProfessionMesmer:       "Me",
		content.ProfessionMonk:         "Mo",
		content.ProfessionNecromancer:  "N",
		content.ProfessionParagon:      "P",
		content.ProfessionRanger:       "R",
		content.ProfessionRitualist:    "Rt",
		content.ProfessionWarrior:      "W",
	}
	for _, p := range content.Professions {
		add(string(p), professionGlyphs[p], string(p))
	}

	add("Tyrian", "Tyr", "Tyrian character")
	add("Canthan", "Can", "Canthan character")
	add("Elonian", "Elo", "Elonian character")
	return icons
}

// Glyph returns the marker for key, or "" when key has no icon.
func (i Icons) Glyph(key string) string {
	return i[key].Glyph
}
