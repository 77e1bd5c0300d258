package display

import (
	"fmt"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
)

// Table is the column layout of one area's items.
type Table struct {
	Header []string
	Rows   []Row
}

// Row is one item's cells. Item is the raw item name so callers can build
// status keys without parsing cells.
type Row struct {
	Item  string
	Cells []string
}

// AreaTable lays out the items of area in name order.
func AreaTable(area content.Area, f *Formatter, icons Icons) Table {
	switch a := area.(type) {
	case *content.QuestArea:
		return questTable(a, f, icons)
	case *content.MissionArea:
		return missionTable(a, f)
	case *content.SkillArea:
		return skillTable(a)
	case *content.VanquishArea:
		return vanquishTable(a, f)
	default:
		return Table{}
	}
}

// AddDetail appends a Wiki column with each item's full wiki address and, for
// quest areas, a Reward Detail column spelling out the reward categories.
func AddDetail(t *Table, area content.Area) {
	wiki := make(map[string]string)
	var rewards map[string]string
	switch a := area.(type) {
	case *content.QuestArea:
		rewards = make(map[string]string, len(a.Quests))
		for _, q := range a.Quests {
			wiki[q.Name] = q.Wiki
			rewards[q.Name] = q.Reward.DetailText()
		}
	case *content.MissionArea:
		for _, m := range a.Missions {
			wiki[m.Name] = m.Wiki
		}
	case *content.SkillArea:
		for _, s := range a.Skills {
			wiki[s.Name] = s.Wiki
		}
	case *content.VanquishArea:
		for _, v := range a.Areas {
			wiki[v.Name] = v.Wiki
		}
	}

	t.Header = append(t.Header, "Wiki")
	if rewards != nil {
		t.Header = append(t.Header, "Reward Detail")
	}
	for i, row := range t.Rows {
		cells := append(row.Cells, WikiURL(wiki[row.Item]))
		if rewards != nil {
			cells = append(cells, rewards[row.Item])
		}
		t.Rows[i].Cells = cells
	}
}

func questTable(a *content.QuestArea, f *Formatter, icons Icons) Table {
	t := Table{Header: []string{"Quest", "Type", "R", "Profession", "Character", "XP", "Reward"}}
	for _, q := range a.Quests {
		questType := q.QuestType
		if questType == "Primary" {
			questType = icons.Glyph(IconPrimaryQuest) + questType
		}
		repeat := ""
		if q.Repeatable {
			repeat = icons.Glyph(IconRepeatableQuest)
		}
		t.Rows = append(t.Rows, Row{Item: q.Name, Cells: []string{
			q.Name,
			questType,
			repeat,
			ProfessionLabel(q.Profession, q.ProfessionLock),
			q.CharacterType,
			f.FormatXP(q.XP),
			q.Reward.Summary(),
		}})
	}
	return t
}

func missionTable(a *content.MissionArea, f *Formatter) Table {
	t := Table{Header: []string{"Mission", "Type", "Rank", "HM Rank", "Z XP", "Z Rank", "Z Coins"}}
	for _, m := range a.Missions {
		t.Rows = append(t.Rows, Row{Item: m.Name, Cells: []string{
			m.Name,
			m.RankType,
			f.Number(m.Rank),
			f.Number(m.HardModeRank),
			f.Number(m.ZaishenXP),
			f.Number(m.ZaishenRank),
			f.Number(m.ZaishenCoins),
		}})
	}
	return t
}

func skillTable(a *content.SkillArea) Table {
	t := Table{Header: []string{"Skill", "Profession", "Attribute"}}
	for _, s := range a.Skills {
		t.Rows = append(t.Rows, Row{Item: s.Name, Cells: []string{s.Name, string(s.Profession), s.Attribute}})
	}
	return t
}

func vanquishTable(a *content.VanquishArea, f *Formatter) Table {
	t := Table{Header: []string{"Area", "Foes", "Type", "Z Type", "Z XP", "Z Rank", "Z Coins"}}
	for _, v := range a.Areas {
		t.Rows = append(t.Rows, Row{Item: v.Name, Cells: []string{
			v.Name,
			foes(v.MinFoes, v.MaxFoes),
			v.RankType,
			v.ZaishenRankType,
			f.Number(v.ZaishenXP),
			f.Number(v.ZaishenRank),
			f.Number(v.ZaishenCoins),
		}})
	}
	return t
}

func foes(lo, hi int) string {
	switch {
	case lo == 0 && hi == 0:
		return NoValue
	case lo == hi || hi == 0:
		return fmt.Sprint(lo)
	default:
		return fmt.Sprintf("%d-%d", lo, hi)
	}
}
