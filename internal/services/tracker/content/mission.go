package content

// MissionItem is one mission with its normal and hard mode rank rewards.
type MissionItem struct {
	Name         string
	Wiki         string
	RankType     string
	Rank         int
	HardModeRank int
	ZaishenXP    int
	ZaishenRank  int
	ZaishenCoins int
}

// MissionArea groups the missions of one campaign.
type MissionArea struct {
	Name     string
	Missions []MissionItem
}

// ParseMissionItem builds a mission. Every field is optional.
func ParseMissionItem(name string, rec Record) (MissionItem, error) {
	m := MissionItem{Name: name}

	var err error
	if m.Wiki, err = wikiOrDefault(rec, name); err != nil {
		return MissionItem{}, err
	}
	if err := stringField(rec, "Type", &m.RankType); err != nil {
		return MissionItem{}, err
	}
	for _, f := range []struct {
		field string
		dst   *int
	}{
		{"Rank", &m.Rank},
		{"HM_Rank", &m.HardModeRank},
		{"Z_XP", &m.ZaishenXP},
		{"Z_Rank", &m.ZaishenRank},
		{"Z_Coins", &m.ZaishenCoins},
	} {
		if err := intField(rec, f.field, f.dst); err != nil {
			return MissionItem{}, err
		}
	}
	return m, nil
}

// ParseMissionArea builds a mission area.
func ParseMissionArea(name string, rec Record) (*MissionArea, error) {
	if err := checkAreaName(KindMission, name); err != nil {
		return nil, err
	}
	missions, err := parseItems(KindMission, name, rec, ParseMissionItem, missionName)
	if err != nil {
		return nil, err
	}
	return &MissionArea{Name: name, Missions: missions}, nil
}

func missionName(m MissionItem) string { return m.Name }

func (a *MissionArea) Kind() Kind { return KindMission }
func (a *MissionArea) AreaName() string { return a.Name }
func (a *MissionArea) Grouping() string { return GroupingMissions }
func (a *MissionArea) ItemNames() []string { return namesOf(a.Missions, missionName) }
func (a *MissionArea) area() {}

// HasItem reports whether the area lists an item with the given name.
func (a *MissionArea) HasItem(name string) bool {
	_, ok := a.Mission(name)
	return ok
}

// Mission returns the mission with the given name.
func (a *MissionArea) Mission(name string) (MissionItem, bool) {
	return findItem(a.Missions, name, missionName)
}
