package catalog

// Coordinates are (longitude, latitude) pairs used for map display. States
// and major districts carry real centroids; everything else derives a stable
// pseudo-position from a character-code hash of its name, so the same
// selection always lands on the same map point.

// centerOfIndia is the fallback when a state is unknown.
var centerOfIndia = [2]float64{78.96, 20.59}

func nameHash(name string) int {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return sum
}

func StateCoordinates(state string) [2]float64 {
	if coords, ok := stateCoords[state]; ok {
		return coords
	}
	return centerOfIndia
}

// DistrictCoordinates returns the exact entry for well-known districts, or
// the state centroid offset by up to ±0.5° derived from the district name.
func DistrictCoordinates(state, district string) [2]float64 {
	if coords, ok := districtCoords[district]; ok {
		return coords
	}

	base := StateCoordinates(state)
	hash := nameHash(district)
	lonOffset := float64(hash%100)/100 - 0.5
	latOffset := float64((hash/100)%100)/100 - 0.5
	return [2]float64{base[0] + lonOffset, base[1] + latOffset}
}

// AreaCoordinates offsets the district position by up to ±0.1° derived from
// the area name.
func AreaCoordinates(state, district, area string) [2]float64 {
	base := DistrictCoordinates(state, district)
	hash := nameHash(area)
	lonOffset := float64(hash%100)/500 - 0.1
	latOffset := float64((hash/100)%100)/500 - 0.1
	return [2]float64{base[0] + lonOffset, base[1] + latOffset}
}
