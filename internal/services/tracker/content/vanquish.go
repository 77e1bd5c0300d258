package content

// VanquishItem is one explorable area that can be vanquished.
type VanquishItem struct {
	Name     string
	Wiki     string
	MinFoes  int
	MaxFoes  int
	RankType string
	// ZaishenRankType defaults to RankType when the record leaves Z_Type out.
	ZaishenRankType string
	ZaishenXP       int
	ZaishenRank     int
	ZaishenCoins    int
}

// VanquishArea groups explorable areas by region.
type VanquishArea struct {
	Name  string
	Areas []VanquishItem
}

// ParseVanquishItem builds a vanquish entry. Every field is optional.
func ParseVanquishItem(name string, rec Record) (VanquishItem, error) {
	v := VanquishItem{Name: name}

	var err error
	if v.Wiki, err = wikiOrDefault(rec, name); err != nil {
		return VanquishItem{}, err
	}
	if err := stringField(rec, "Type", &v.RankType); err != nil {
		return VanquishItem{}, err
	}
	v.ZaishenRankType = v.RankType
	if err := stringField(rec, "Z_Type", &v.ZaishenRankType); err != nil {
		return VanquishItem{}, err
	}
	for _, f := range []struct {
		field string
		dst   *int
	}{
		{"Min", &v.MinFoes},
		{"Max", &v.MaxFoes},
		{"Z_XP", &v.ZaishenXP},
		{"Z_Rank", &v.ZaishenRank},
		{"Z_Coins", &v.ZaishenCoins},
	} {
		if err := intField(rec, f.field, f.dst); err != nil {
			return VanquishItem{}, err
		}
	}
	return v, nil
}

// ParseVanquishArea builds a vanquish area.
func ParseVanquishArea(name string, rec Record) (*VanquishArea, error) {
	if err := checkAreaName(KindVanquish, name); err != nil {
		return nil, err
	}
	areas, err := parseItems(KindVanquish, name, rec, ParseVanquishItem, vanquishName)
	if err != nil {
		return nil, err
	}
	return &VanquishArea{Name: name, Areas: areas}, nil
}

func vanquishName(v VanquishItem) string { return v.Name }

func (a *VanquishArea) Kind() Kind { return KindVanquish }
func (a *VanquishArea) AreaName() string { return a.Name }
func (a *VanquishArea) Grouping() string { return GroupingVanquish }
func (a *VanquishArea) ItemNames() []string { return namesOf(a.Areas, vanquishName) }
func (a *VanquishArea) area() {}

// HasItem reports whether the area lists an item with the given name.
func (a *VanquishArea) HasItem(name string) bool {
	_, ok := a.Explorable(name)
	return ok
}

// Explorable returns the explorable area entry with the given name.
func (a *VanquishArea) Explorable(name string) (VanquishItem, bool) {
	return findItem(a.Areas, name, vanquishName)
}
