package screen

// Sector pairs a display name with its provider listing key.
type Sector struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Sectors returns the fixed sector table in display order.
func Sectors() []Sector {
	return []Sector{
		{Name: "Basic Materials", Key: "basic-materials"},
		{Name: "Communication Services", Key: "communication-services"},
		{Name: "Consumer Cyclical", Key: "consumer-cyclical"},
		{Name: "Consumer Defensive", Key: "consumer-defensive"},
		{Name: "Energy", Key: "energy"},
		{Name: "Financial Services", Key: "financial-services"},
		{Name: "Healthcare", Key: "healthcare"},
		{Name: "Industrials", Key: "industrials"},
		{Name: "Real Estate", Key: "real-estate"},
		{Name: "Technology", Key: "technology"},
		{Name: "Utilities", Key: "utilities"},
	}
}

// SectorKey resolves a sector display name to its listing key.
func SectorKey(name string) (string, bool) {
	for _, s := range Sectors() {
		if s.Name == name {
			return s.Key, true
		}
	}
	return "", false
}
