package recommend

import "strings"

// Config carries the provider parameters derived from a selector: seed
// genres and target attributes for the recommendation endpoint, plus a query
// string for the search fallbacks.
type Config struct {
	Label         string
	Query         string
	Genres        []string
	TargetEnergy  float64
	TargetValence float64
}

// DefaultConfig is the neutral configuration unrecognized selector keys soft-
// default to, so an unknown mood never fails a request.
func DefaultConfig() Config {
	return Config{
		Label:         "Study Session",
		Query:         "study music",
		Genres:        []string{"study"},
		TargetEnergy:  0.4,
		TargetValence: 0.5,
	}
}

var moodConfigs = map[string]Config{
	"love": {
		Label: "Love Mood", Query: "love songs",
		Genres: []string{"pop", "romance"}, TargetEnergy: 0.4, TargetValence: 0.8,
	},
	"rage": {
		Label: "Rage Mode", Query: "rage workout metal",
		Genres: []string{"rock", "metal"}, TargetEnergy: 0.9, TargetValence: 0.3,
	},
	"optimism": {
		Label: "Optimistic Vibes", Query: "feel good indie pop",
		Genres: []string{"pop", "indie-pop"}, TargetEnergy: 0.7, TargetValence: 0.8,
	},
	"joy": {
		Label: "Pure Joy", Query: "happy dance hits",
		Genres: []string{"dance", "pop"}, TargetEnergy: 0.8, TargetValence: 0.9,
	},
	"nostalgia": {
		Label: "Nostalgia Trip", Query: "classic rock oldies",
		Genres: []string{"classic-rock", "oldies"}, TargetEnergy: 0.5, TargetValence: 0.6,
	},
	"confident": {
		Label: "Confidence Boost", Query: "confidence hip hop",
		Genres: []string{"hip-hop", "pop"}, TargetEnergy: 0.8, TargetValence: 0.7,
	},
	"hyper craze": {
		Label: "Hyper Craze", Query: "edm bangers",
		Genres: []string{"edm", "electronic"}, TargetEnergy: 0.9, TargetValence: 0.8,
	},
	"sad": {
		Label: "Melancholy", Query: "sad acoustic indie",
		Genres: []string{"acoustic", "indie"}, TargetEnergy: 0.3, TargetValence: 0.2,
	},
}

var workloadConfigs = map[string]Config{
	"light": {
		Label: "Light Workload", Query: "chill lounge background",
		Genres: []string{"chill", "lounge"}, TargetEnergy: 0.3, TargetValence: 0.7,
	},
	"moderate": {
		Label: "Moderate Workload", Query: "indie alternative focus",
		Genres: []string{"indie-pop", "alternative"}, TargetEnergy: 0.5, TargetValence: 0.6,
	},
	"heavy": {
		Label: "Heavy Workload", Query: "classical ambient concentration",
		Genres: []string{"classical", "ambient"}, TargetEnergy: 0.2, TargetValence: 0.5,
	},
}

var focusConfigs = map[string]Config{
	"low": {
		Label: "Low Focus", Query: "upbeat study pop",
		Genres: []string{"pop", "indie"}, TargetEnergy: 0.7, TargetValence: 0.8,
	},
	"medium": {
		Label: "Medium Focus", Query: "indie alternative study",
		Genres: []string{"indie", "alternative"}, TargetEnergy: 0.5, TargetValence: 0.6,
	},
	"high": {
		Label: "Deep Focus", Query: "deep focus ambient",
		Genres: []string{"classical", "ambient"}, TargetEnergy: 0.3, TargetValence: 0.5,
	},
}

// MoodConfig resolves a mood name to its provider configuration.
func MoodConfig(mood string) Config {
	return lookup(moodConfigs, mood)
}

// WorkloadConfig resolves a workload level to its provider configuration.
func WorkloadConfig(workload string) Config {
	return lookup(workloadConfigs, workload)
}

// FocusConfig resolves a focus level to its provider configuration. Long
// study sessions bias the target energy downward so the selection stays
// listenable for hours.
func FocusConfig(level string, studyHours int) Config {
	cfg := lookup(focusConfigs, level)
	if studyHours >= 4 && cfg.TargetEnergy > 0.3 {
		cfg.TargetEnergy -= 0.1
	}
	return cfg
}

func lookup(table map[string]Config, key string) Config {
	if cfg, ok := table[canonical(key)]; ok {
		return cfg
	}
	return DefaultConfig()
}

func canonical(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
