package content

import "strings"

// Reward is one category of quest reward.
type Reward int

const (
	RewardGold Reward = iota
	RewardItems
	RewardSkills
	RewardSkillPoints
	RewardAttributePoints
	RewardRank
	RewardFaction
	RewardZaishen
	RewardHeroes
	RewardProfession

	// RewardCategories is the width of a RewardVector.
	RewardCategories = 10
)

type rewardDef struct {
	tag   string
	code  byte
	label string
}

// Indexed by Reward; order is the summary and detail order.
var rewardDefs = [RewardCategories]rewardDef{
	RewardGold:            {tag: "Gold", code: 'G', label: "Gold"},
	RewardItems:           {tag: "Items", code: 'I', label: "Items"},
	RewardSkills:          {tag: "Skills", code: 'S', label: "Skills"},
	RewardSkillPoints:     {tag: "Skill_Points", code: 'P', label: "Skill Points"},
	RewardAttributePoints: {tag: "Attribute_Points", code: 'A', label: "Attribute Points"},
	RewardRank:            {tag: "Rank", code: 'R', label: "Rank Points"},
	RewardFaction:         {tag: "Faction", code: 'F', label: "Faction"},
	RewardZaishen:         {tag: "Zaishen", code: 'Z', label: "Zaishen Coins"},
	RewardHeroes:          {tag: "Heroes", code: 'H', label: "Heroes"},
	RewardProfession:      {tag: "Profession", code: '2', label: "Profession"},
}

// String returns the human-readable category name.
func (r Reward) String() string {
	if r < 0 || int(r) >= RewardCategories {
		return ""
	}
	return rewardDefs[r].label
}

// RewardVector flags which reward categories a quest grants.
type RewardVector [RewardCategories]bool

// EncodeRewards builds a vector from raw content tags. Unknown tags are ignored
// so newer content files keep loading.
func EncodeRewards(tags []string) RewardVector {
	var v RewardVector
	for _, tag := range tags {
		for i, def := range rewardDefs {
			if def.tag == tag {
				v[i] = true
			}
		}
	}
	return v
}

// Has reports whether the category is set.
func (v RewardVector) Has(r Reward) bool {
	if r < 0 || int(r) >= RewardCategories {
		return false
	}
	return v[r]
}

// Summary renders one character per category: its code when set, a space
// otherwise. The result is always RewardCategories characters long.
func (v RewardVector) Summary() string {
	var b [RewardCategories]byte
	for i, def := range rewardDefs {
		if v[i] {
			b[i] = def.code
		} else {
			b[i] = ' '
		}
	}
	return string(b[:])
}

// DetailText joins the names of the set categories with ", ".
func (v RewardVector) DetailText() string {
	var labels []string
	for i, def := range rewardDefs {
		if v[i] {
			labels = append(labels, def.label)
		}
	}
	return strings.Join(labels, ", ")
}
