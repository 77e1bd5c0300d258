package content

// QuestItem is one quest in an area's quest list.
type QuestItem struct {
	Name       string
	Wiki       string
	QuestType  string
	Repeatable bool
	XP         int
	// Profession is ProfessionNone when the quest is open to every profession.
	Profession     Profession
	ProfessionLock ProfessionLock
	// CharacterType is empty when the quest is not restricted to a character type.
	CharacterType string
	Reward        RewardVector
}

// QuestArea groups the quests available in one explorable zone or town.
type QuestArea struct {
	Name     string
	Campaign string
	Quests   []QuestItem
}

// ParseQuestItem builds a quest from its raw record. Type is required;
// Repeatable must be a YAML boolean when present; Profession_Lock must be one
// of Any, Primary, or Unlocked.
func ParseQuestItem(name string, rec Record) (QuestItem, error) {
	q := QuestItem{Name: name, ProfessionLock: LockAny}
	fail := func(err error) (QuestItem, error) {
		return QuestItem{}, withContext(err, KindQuest, "", name)
	}

	var err error
	if q.Wiki, err = wikiOrDefault(rec, name); err != nil {
		return fail(err)
	}

	questType, ok, err := rec.Text("Type")
	if err != nil {
		return fail(err)
	}
	if !ok {
		return fail(missingField("Type"))
	}
	q.QuestType = questType

	if q.Repeatable, _, err = rec.Bool("Repeatable"); err != nil {
		return fail(err)
	}

	if err := intField(rec, "XP", &q.XP); err != nil {
		return fail(err)
	}
	if q.XP < 0 {
		return fail(invalidField("XP", "must not be negative, got %d", q.XP))
	}

	if q.Profession, err = professionField(rec, "Profession"); err != nil {
		return fail(err)
	}

	lock, ok, err := rec.Text("Profession_Lock")
	if err != nil {
		return fail(err)
	}
	if ok {
		if q.ProfessionLock, err = ParseProfessionLock(lock); err != nil {
			return fail(invalidField("Profession_Lock", "%v", err))
		}
	}

	if err := stringField(rec, "Character", &q.CharacterType); err != nil {
		return fail(err)
	}

	tags, _, err := rec.Strings("Reward")
	if err != nil {
		return fail(err)
	}
	q.Reward = EncodeRewards(tags)

	return q, nil
}

// ParseQuestArea builds a quest area. Campaign is required.
func ParseQuestArea(name string, rec Record) (*QuestArea, error) {
	if err := checkAreaName(KindQuest, name); err != nil {
		return nil, err
	}
	campaign, ok, err := rec.Text("Campaign")
	if err != nil {
		return nil, withContext(err, KindQuest, name, "")
	}
	if !ok || campaign == "" {
		return nil, withContext(missingField("Campaign"), KindQuest, name, "")
	}

	quests, err := parseItems(KindQuest, name, rec, ParseQuestItem, questName)
	if err != nil {
		return nil, err
	}
	return &QuestArea{Name: name, Campaign: campaign, Quests: quests}, nil
}

func questName(q QuestItem) string { return q.Name }

func (a *QuestArea) Kind() Kind { return KindQuest }
func (a *QuestArea) AreaName() string { return a.Name }
func (a *QuestArea) Grouping() string { return a.Campaign }
func (a *QuestArea) ItemNames() []string { return namesOf(a.Quests, questName) }
func (a *QuestArea) area() {}

// HasItem reports whether the area lists an item with the given name.
func (a *QuestArea) HasItem(name string) bool {
	_, ok := a.Quest(name)
	return ok
}

// Quest returns the quest with the given name.
func (a *QuestArea) Quest(name string) (QuestItem, bool) {
	return findItem(a.Quests, name, questName)
}
