package content

import "sort"

// Area is a named group of same-kind items. The implementations are
// *QuestArea, *MissionArea, *SkillArea, and *VanquishArea; the unexported
// method keeps the set closed so callers can switch on Kind.
type Area interface {
	Kind() Kind
	AreaName() string
	// Grouping is the navigation bucket the area is listed under.
	Grouping() string
	// ItemNames returns item names in sorted order.
	ItemNames() []string
	HasItem(name string) bool
	area()
}

// Fixed groupings for the kinds that are not grouped by campaign.
const (
	GroupingMissions = "Missions"
	GroupingSkills   = "Skill Hunter"
	GroupingVanquish = "Vanquisher"
)

// ParseArea dispatches to the parser for kind.
func ParseArea(kind Kind, name string, rec Record) (Area, error) {
	var (
		area Area
		err  error
	)
	switch kind {
	case KindQuest:
		area, err = ParseQuestArea(name, rec)
	case KindMission:
		area, err = ParseMissionArea(name, rec)
	case KindSkill:
		area, err = ParseSkillArea(name, rec)
	case KindVanquish:
		area, err = ParseVanquishArea(name, rec)
	default:
		return nil, &ValidationError{Area: name, Reason: kind.String() + " is not a content kind"}
	}
	if err != nil {
		return nil, err
	}
	return area, nil
}

type itemParser[T any] func(name string, rec Record) (T, error)

// parseItems builds one item per entry under the kind's items key, rejects
// reserved or duplicate names, and sorts the result by name.
func parseItems[T any](kind Kind, area string, rec Record, parse itemParser[T], nameOf func(T) string) ([]T, error) {
	entries, err := rec.Entries(kind.ItemsKey())
	if err != nil {
		return nil, withContext(err, kind, area, "")
	}

	items := make([]T, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := checkName(entry.Name); err != nil {
			return nil, &ValidationError{Kind: kind, Area: area, Item: entry.Name, Reason: err.Error()}
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, &ValidationError{Kind: kind, Area: area, Item: entry.Name, Reason: reasonDuplicate}
		}
		seen[entry.Name] = struct{}{}

		item, err := parse(entry.Name, entry.Record)
		if err != nil {
			return nil, withContext(err, kind, area, entry.Name)
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return nameOf(items[i]) < nameOf(items[j])
	})
	return items, nil
}

func checkAreaName(kind Kind, name string) error {
	if err := checkName(name); err != nil {
		return &ValidationError{Kind: kind, Area: name, Reason: err.Error()}
	}
	return nil
}

func namesOf[T any](items []T, nameOf func(T) string) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = nameOf(item)
	}
	return names
}

// findItem binary-searches a name-sorted slice.
func findItem[T any](items []T, name string, nameOf func(T) string) (T, bool) {
	i := sort.Search(len(items), func(i int) bool { return nameOf(items[i]) >= name })
	if i < len(items) && nameOf(items[i]) == name {
		return items[i], true
	}
	var zero T
	return zero, false
}
