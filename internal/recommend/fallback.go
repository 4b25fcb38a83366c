package recommend

// fallbackCatalog is the static, provider-independent catalog returned when
// every network strategy has failed. Serving it is a pure function with no
// failure mode.
var fallbackCatalog = []Playlist{
	{
		ID:          "studybeats-lofi",
		Title:       "Lo-Fi Study Beats",
		Artist:      "Studybeats",
		Description: "Laid-back lo-fi hip hop for long reading sessions.",
		Tracks: []Track{
			{ID: "studybeats-lofi-1", Title: "Window Rain", Artist: "Studybeats", DurationMs: 152000},
			{ID: "studybeats-lofi-2", Title: "Late Library", Artist: "Studybeats", DurationMs: 168000},
			{ID: "studybeats-lofi-3", Title: "Coffee Loop", Artist: "Studybeats", DurationMs: 141000},
		},
	},
	{
		ID:          "studybeats-deep-focus",
		Title:       "Deep Focus",
		Artist:      "Studybeats",
		Description: "Minimal electronic textures that stay out of the way.",
		Tracks: []Track{
			{ID: "studybeats-focus-1", Title: "Stillwater", Artist: "Studybeats", DurationMs: 201000},
			{ID: "studybeats-focus-2", Title: "Second Wind", Artist: "Studybeats", DurationMs: 187000},
			{ID: "studybeats-focus-3", Title: "Night Shift", Artist: "Studybeats", DurationMs: 176000},
		},
	},
	{
		ID:          "studybeats-classical",
		Title:       "Classical Concentration",
		Artist:      "Studybeats",
		Description: "Piano and strings for heavy workloads.",
		Tracks: []Track{
			{ID: "studybeats-classical-1", Title: "Morning Etude", Artist: "Studybeats", DurationMs: 243000},
			{ID: "studybeats-classical-2", Title: "Quiet Sonata", Artist: "Studybeats", DurationMs: 265000},
			{ID: "studybeats-classical-3", Title: "Paper Waltz", Artist: "Studybeats", DurationMs: 198000},
		},
	},
	{
		ID:          "studybeats-ambient",
		Title:       "Ambient Study",
		Artist:      "Studybeats",
		Description: "Slow ambient drones for all-night sessions.",
		Tracks: []Track{
			{ID: "studybeats-ambient-1", Title: "Overcast", Artist: "Studybeats", DurationMs: 312000},
			{ID: "studybeats-ambient-2", Title: "Glasswork", Artist: "Studybeats", DurationMs: 284000},
			{ID: "studybeats-ambient-3", Title: "Low Tide", Artist: "Studybeats", DurationMs: 297000},
		},
	},
}

// Catalog returns up to limit static study playlists. The result is a copy,
// so callers may mutate it freely.
func Catalog(limit int) []Playlist {
	if limit <= 0 || limit > len(fallbackCatalog) {
		limit = len(fallbackCatalog)
	}
	out := make([]Playlist, limit)
	for i, p := range fallbackCatalog[:limit] {
		p.Tracks = append([]Track(nil), p.Tracks...)
		out[i] = p
	}
	return out
}
