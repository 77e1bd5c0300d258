package content

// SkillItem is one capturable skill.
type SkillItem struct {
	Name       string
	Wiki       string
	Profession Profession
	Attribute  string
}

// SkillArea groups skills, usually by campaign or profession.
type SkillArea struct {
	Name   string
	Skills []SkillItem
}

// ParseSkillItem builds a skill. Every field is optional.
func ParseSkillItem(name string, rec Record) (SkillItem, error) {
	s := SkillItem{Name: name}

	var err error
	if s.Wiki, err = wikiOrDefault(rec, name); err != nil {
		return SkillItem{}, err
	}
	if s.Profession, err = professionField(rec, "Profession"); err != nil {
		return SkillItem{}, err
	}
	if err := stringField(rec, "Attribute", &s.Attribute); err != nil {
		return SkillItem{}, err
	}
	return s, nil
}

// ParseSkillArea builds a skill area.
func ParseSkillArea(name string, rec Record) (*SkillArea, error) {
	if err := checkAreaName(KindSkill, name); err != nil {
		return nil, err
	}
	skills, err := parseItems(KindSkill, name, rec, ParseSkillItem, skillName)
	if err != nil {
		return nil, err
	}
	return &SkillArea{Name: name, Skills: skills}, nil
}

func skillName(s SkillItem) string { return s.Name }

func (a *SkillArea) Kind() Kind { return KindSkill }
func (a *SkillArea) AreaName() string { return a.Name }
func (a *SkillArea) Grouping() string { return GroupingSkills }
func (a *SkillArea) ItemNames() []string { return namesOf(a.Skills, skillName) }
func (a *SkillArea) area() {}

// HasItem reports whether the area lists an item with the given name.
func (a *SkillArea) HasItem(name string) bool {
	_, ok := a.Skill(name)
	return ok
}

// Skill returns the skill with the given name.
func (a *SkillArea) Skill(name string) (SkillItem, bool) {
	return findItem(a.Skills, name, skillName)
}
