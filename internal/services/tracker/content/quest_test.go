package content

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuestItemDefaults(t *testing.T) {
	rec := mustRecord(t, "Type: Secondary\n")

	got, err := ParseQuestItem("Defend Fort Ranik?", rec)
	if err != nil {
		t.Fatalf("parse quest: %v", err)
	}
	want := QuestItem{
		Name:           "Defend Fort Ranik?",
		Wiki:           "Defend_Fort_Ranik%3F",
		QuestType:      "Secondary",
		ProfessionLock: LockAny,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("quest mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuestItemAllFields(t *testing.T) {
	rec := mustRecord(t, `
Wiki: Ruins_of_Surmia_(quest)
Type: Primary
Repeatable: true
XP: 1500
Profession: Warrior
Profession_Lock: Primary
Character: Tutorial
Reward: [Skills, Gold, Heroes]
`)

	got, err := ParseQuestItem("Ruins of Surmia", rec)
	if err != nil {
		t.Fatalf("parse quest: %v", err)
	}
	want := QuestItem{
		Name:           "Ruins of Surmia",
		Wiki:           "Ruins_of_Surmia_(quest)",
		QuestType:      "Primary",
		Repeatable:     true,
		XP:             1500,
		Profession:     ProfessionWarrior,
		ProfessionLock: LockPrimary,
		CharacterType:  "Tutorial",
		Reward:         EncodeRewards([]string{"Gold", "Skills", "Heroes"}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("quest mismatch (-want +got):\n%s", diff)
	}
	if got.Reward.Summary() != "G S     H " {
		t.Fatalf("unexpected reward summary %q", got.Reward.Summary())
	}
}

func TestParseQuestItemMissingType(t *testing.T) {
	_, err := ParseQuestItem("Charr at the Gate", mustRecord(t, "XP: 100\n"))
	verr := requireValidationError(t, err)
	if verr.Item != "Charr at the Gate" || verr.Field != "Type" {
		t.Fatalf("expected item and Type field, got %+v", verr)
	}
	if !strings.Contains(err.Error(), "Charr at the Gate") || !strings.Contains(err.Error(), "Type") {
		t.Fatalf("expected message to name quest and field, got %q", err.Error())
	}
}

func TestParseQuestItemAcceptsYAML11Booleans(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "yes", want: true},
		{value: "Yes", want: true},
		{value: "y", want: true},
		{value: "on", want: true},
		{value: "no", want: false},
		{value: "N", want: false},
		{value: "off", want: false},
		{value: "true", want: true},
		{value: "False", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseQuestItem("Charr at the Gate", mustRecord(t, "Type: Primary\nRepeatable: "+tt.value+"\n"))
			if err != nil {
				t.Fatalf("parse quest: %v", err)
			}
			if got.Repeatable != tt.want {
				t.Fatalf("Repeatable = %v, want %v", got.Repeatable, tt.want)
			}
		})
	}
}

func TestParseQuestItemRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "quoted repeatable", doc: "Type: Primary\nRepeatable: \"yes\"\n", field: "Repeatable"},
		{name: "single quoted repeatable", doc: "Type: Primary\nRepeatable: 'on'\n", field: "Repeatable"},
		{name: "null repeatable", doc: "Type: Primary\nRepeatable:\n", field: "Repeatable"},
		{name: "numeric repeatable", doc: "Type: Primary\nRepeatable: 1\n", field: "Repeatable"},
		{name: "bogus lock", doc: "Type: Primary\nProfession_Lock: Bogus\n", field: "Profession_Lock"},
		{name: "text xp", doc: "Type: Primary\nXP: lots\n", field: "XP"},
		{name: "negative xp", doc: "Type: Primary\nXP: -5\n", field: "XP"},
		{name: "unknown profession", doc: "Type: Primary\nProfession: Bard\n", field: "Profession"},
		{name: "list type", doc: "Type: [Primary]\n", field: "Type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestItem("Quest", mustRecord(t, tt.doc))
			verr := requireValidationError(t, err)
			if verr.Field != tt.field {
				t.Fatalf("expected field %q, got %+v", tt.field, verr)
			}
			if verr.Kind != KindQuest || verr.Item != "Quest" {
				t.Fatalf("expected quest context, got %+v", verr)
			}
		})
	}
}

func TestParseQuestAreaSortsByName(t *testing.T) {
	rec := mustRecord(t, `
Campaign: Prophecies
Quests:
  Zed: {Type: Secondary}
  Abel: {Type: Secondary}
  Mira: {Type: Primary}
`)

	area, err := ParseQuestArea("Ascalon City", rec)
	if err != nil {
		t.Fatalf("parse area: %v", err)
	}
	if diff := cmp.Diff([]string{"Abel", "Mira", "Zed"}, area.ItemNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if area.Grouping() != "Prophecies" || area.Kind() != KindQuest || area.AreaName() != "Ascalon City" {
		t.Fatalf("unexpected area metadata: %+v", area)
	}
	if q, ok := area.Quest("Mira"); !ok || q.QuestType != "Primary" {
		t.Fatalf("expected to find Mira, got %+v ok=%v", q, ok)
	}
	if area.HasItem("Nobody") {
		t.Fatal("expected unknown quest to be absent")
	}
}

func TestParseQuestAreaSortIsCaseSensitive(t *testing.T) {
	rec := mustRecord(t, `
Campaign: Factions
Quests:
  apple: {Type: Secondary}
  Banana: {Type: Secondary}
`)
	area, err := ParseQuestArea("Shing Jea", rec)
	if err != nil {
		t.Fatalf("parse area: %v", err)
	}
	if diff := cmp.Diff([]string{"Banana", "apple"}, area.ItemNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuestAreaRequiresCampaign(t *testing.T) {
	_, err := ParseQuestArea("Lion's Arch", mustRecord(t, "Quests: {}\n"))
	verr := requireValidationError(t, err)
	if verr.Area != "Lion's Arch" || verr.Field != "Campaign" || verr.Item != "" {
		t.Fatalf("expected area-level Campaign error, got %+v", verr)
	}
}

func TestParseQuestAreaWithoutQuests(t *testing.T) {
	area, err := ParseQuestArea("Empty", mustRecord(t, "Campaign: Nightfall\n"))
	if err != nil {
		t.Fatalf("parse area: %v", err)
	}
	if len(area.Quests) != 0 {
		t.Fatalf("expected no quests, got %d", len(area.Quests))
	}
}

func TestParseQuestAreaItemErrorCarriesArea(t *testing.T) {
	rec := mustRecord(t, `
Campaign: Prophecies
Quests:
  Good: {Type: Primary}
  Broken: {Repeatable: "no"}
`)
	_, err := ParseQuestArea("Ashford", rec)
	verr := requireValidationError(t, err)
	if verr.Area != "Ashford" || verr.Item != "Broken" {
		t.Fatalf("expected area and item context, got %+v", verr)
	}
}

func TestParseQuestAreaRejectsReservedNames(t *testing.T) {
	tests := []struct {
		area string
		doc  string
	}{
		{area: "Bad::Area", doc: "Campaign: Prophecies\n"},
		{area: "Bang!", doc: "Campaign: Prophecies\n"},
		{area: "Fine", doc: "Campaign: Prophecies\nQuests:\n  \"A::B\": {Type: Primary}\n"},
		{area: "Fine", doc: "Campaign: Prophecies\nQuests:\n  \"Hey!\": {Type: Primary}\n"},
	}
	for _, tt := range tests {
		_, err := ParseQuestArea(tt.area, mustRecord(t, tt.doc))
		verr := requireValidationError(t, err)
		if !strings.Contains(verr.Reason, "reserved separator") {
			t.Fatalf("expected reserved separator reason for %q, got %+v", tt.area, verr)
		}
	}
}

func TestParseQuestAreaRejectsDuplicateNames(t *testing.T) {
	rec := mustRecord(t, `
Campaign: Prophecies
Quests:
  1: {Type: Primary}
  "1": {Type: Secondary}
`)
	_, err := ParseQuestArea("Numbers", rec)
	verr := requireValidationError(t, err)
	if verr.Item != "1" || verr.Reason != reasonDuplicate {
		t.Fatalf("expected duplicate item error, got %+v", verr)
	}
}

func TestParseQuestAreaRejectsRepeatedKeys(t *testing.T) {
	rec := mustRecord(t, `
Campaign: Prophecies
Quests:
  Ruins of Surmia: {Type: Primary}
  Ruins of Surmia: {Type: Secondary}
`)
	_, err := ParseQuestArea("Ascalon", rec)
	verr := requireValidationError(t, err)
	if verr.Item != "Ruins of Surmia" || verr.Reason != reasonDuplicate {
		t.Fatalf("expected duplicate item error, got %+v", verr)
	}
}
