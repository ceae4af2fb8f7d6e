package catalog

import "sort"

// Location identifies the patient's selected place. All four fields are
// literal strings; Seed concatenates them the same way the booking front-ends
// do, so the derived doctor directory is stable for a given selection.
type Location struct {
	Country  string `json:"country"`
	State    string `json:"state"`
	District string `json:"district"`
	Area     string `json:"area"`
}

// Seed returns the character-code sum of "area-district-state-country".
// Every deterministic attribute of the generated directory derives from it.
func (l Location) Seed() int {
	seed := l.Area + "-" + l.District + "-" + l.State + "-" + l.Country
	sum := 0
	for _, r := range seed {
		sum += int(r)
	}
	return sum
}

func Countries() []string {
	return []string{"India"}
}

func States() []string {
	states := make([]string, 0, len(stateDistricts))
	for state := range stateDistricts {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// Districts returns the district list for a state, or nil for an unknown state.
func Districts(state string) []string {
	districts, ok := stateDistricts[state]
	if !ok {
		return nil
	}
	out := make([]string, len(districts))
	copy(out, districts)
	return out
}

// Areas returns the neighborhoods of a district. Districts without a curated
// list fall back to the generic area names, so every district has areas.
func Areas(district string) []string {
	areas, ok := districtAreas[district]
	if !ok {
		areas = defaultAreas
	}
	out := make([]string, len(areas))
	copy(out, areas)
	return out
}

func HasState(state string) bool {
	_, ok := stateDistricts[state]
	return ok
}

func DistrictInState(state, district string) bool {
	for _, d := range stateDistricts[state] {
		if d == district {
			return true
		}
	}
	return false
}

func AreaInDistrict(district, area string) bool {
	for _, a := range Areas(district) {
		if a == area {
			return true
		}
	}
	return false
}
