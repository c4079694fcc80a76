package geokdnn

// d7Dataset returns a small seven-record dataset reused across this
// package's tests for median splitting, tree construction, and search.
func d7Dataset() []Record {
	return []Record{
		{ID: "0", Age: 18, Name: "hamza harkous", Latitude: 40.3, Longitude: 13.3},
		{ID: "1", Age: 40, Name: "John Doe", Latitude: 120.3, Longitude: -3.3},
		{ID: "2", Age: 80, Name: "Doroles Doe", Latitude: 89.3, Longitude: -59.3},
		{ID: "3", Age: 35, Name: "Debby Smith", Latitude: 120.3, Longitude: 53.3},
		{ID: "4", Age: 33, Name: "agent smith", Latitude: 90.3, Longitude: 43.3},
		{ID: "5", Age: 35, Name: "Jane Smith", Latitude: 110.3, Longitude: 53.3},
		{ID: "6", Age: 77, Name: "FLoat Number", Latitude: 60.3, Longitude: -13.3},
	}
}

func idSet(records []Record) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.ID] = true
	}
	return out
}
