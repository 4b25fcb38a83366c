package recommend

import "testing"

func TestMoodConfig(t *testing.T) {
	tests := []struct {
		name      string
		mood      string
		wantLabel string
	}{
		{name: "known mood", mood: "love", wantLabel: "Love Mood"},
		{name: "two word mood", mood: "hyper craze", wantLabel: "Hyper Craze"},
		{name: "case and whitespace insensitive", mood: "  RaGe ", wantLabel: "Rage Mode"},
		{name: "unknown mood soft-defaults", mood: "melodramatic", wantLabel: "Study Session"},
		{name: "empty mood soft-defaults", mood: "", wantLabel: "Study Session"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := MoodConfig(tc.mood)
			if got.Label != tc.wantLabel {
				t.Fatalf("Label = %q, want %q", got.Label, tc.wantLabel)
			}
			if got.Query == "" || len(got.Genres) == 0 {
				t.Fatalf("config incomplete: %+v", got)
			}
		})
	}
}

func TestWorkloadConfig(t *testing.T) {
	if got := WorkloadConfig("heavy"); got.Label != "Heavy Workload" {
		t.Fatalf("Label = %q, want Heavy Workload", got.Label)
	}
	if got := WorkloadConfig("crushing"); got.Label != "Study Session" {
		t.Fatalf("unknown workload Label = %q, want Study Session", got.Label)
	}
}

func TestFocusConfigLongSessionsLowerEnergy(t *testing.T) {
	short := FocusConfig("medium", 2)
	long := FocusConfig("medium", 4)
	if long.TargetEnergy >= short.TargetEnergy {
		t.Fatalf("long session energy = %v, want below %v", long.TargetEnergy, short.TargetEnergy)
	}

	// Deep focus already sits at the floor and stays there.
	deep := FocusConfig("high", 8)
	if deep.TargetEnergy != FocusConfig("high", 0).TargetEnergy {
		t.Fatalf("deep focus energy changed: %v", deep.TargetEnergy)
	}
}
