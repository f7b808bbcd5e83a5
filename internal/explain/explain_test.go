package explain

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sportstat/tennis-api/internal/features"
	"github.com/sportstat/tennis-api/internal/models"
)

var (
	veteran = models.PlayerProfile{Name: "Novak Djokovic", Rank: 1, Age: 37, Height: 188, Hand: "R"}
	young   = models.PlayerProfile{Name: "Carlos Alcaraz", Rank: 2, Age: 21, Height: 183, Hand: "R"}
)

func explainFor(p1, p2 models.PlayerProfile, prob float64, surface string) []string {
	fv := features.BuildPair(p1, p2, features.Context{Surface: surface, GrandSlam: true})
	return Explain(p1, p2, fv, prob, surface, DefaultThresholds())
}

func TestSimilarRankingLine(t *testing.T) {
	// rank_diff = -1, inside the 10-place window: no advantage claim
	lines := explainFor(veteran, young, 55, "hard")

	if !strings.Contains(lines[0], "Similar Ranking") {
		t.Errorf("ranking line = %q, want similar-ranking branch", lines[0])
	}
	if strings.Contains(lines[0], "Advantage") {
		t.Errorf("ranking line claims an advantage for a 1-place gap: %q", lines[0])
	}
}

func TestRankingAdvantageAttribution(t *testing.T) {
	p1 := models.PlayerProfile{Name: "Casper Ruud", Rank: 5, Age: 25, Height: 183}
	p2 := models.PlayerProfile{Name: "Botic van de Zandschulp", Rank: 50, Age: 28, Height: 188}

	lines := explainFor(p1, p2, 75, "clay")

	// rank_diff = -45: the lower-numbered (better) rank holds the edge
	if !strings.Contains(lines[0], "Ranking Advantage") || !strings.Contains(lines[0], "Casper Ruud is ranked 45 places above") {
		t.Errorf("ranking line = %q", lines[0])
	}
}

func TestRankingAdvantageOtherDirection(t *testing.T) {
	p1 := models.PlayerProfile{Name: "Qualifier", Rank: 180, Age: 24, Height: 185}
	p2 := models.PlayerProfile{Name: "Alexander Zverev", Rank: 3, Age: 27, Height: 198}

	lines := explainFor(p1, p2, 20, "hard")

	if !strings.Contains(lines[0], "Alexander Zverev is ranked 177 places above") {
		t.Errorf("ranking line = %q", lines[0])
	}
}

func TestAgeLineOmittedInsideThreshold(t *testing.T) {
	// Equal imputed ages → age_diff 0 → no age line
	p1 := models.PlayerProfile{Name: "A", Rank: 10, Age: 25, Height: 185}
	p2 := models.PlayerProfile{Name: "B", Rank: 12, Age: 25, Height: 185}

	for _, line := range explainFor(p1, p2, 52, "grass") {
		if strings.Contains(line, "[AGE]") {
			t.Errorf("age line emitted for zero age gap: %q", line)
		}
	}
}

func TestAgeAndHeightLinesPastThreshold(t *testing.T) {
	lines := explainFor(veteran, young, 60, "hard")

	var sawAge bool
	for _, line := range lines {
		if strings.Contains(line, "[AGE]") {
			sawAge = true
			if !strings.Contains(line, "Novak Djokovic is 16.0 years older") {
				t.Errorf("age line = %q", line)
			}
		}
		if strings.Contains(line, "[HT]") {
			// height gap is exactly 5, not above it
			t.Errorf("height line emitted for a 5cm gap (threshold is exclusive): %q", line)
		}
	}
	if !sawAge {
		t.Error("missing age line for a 16-year gap")
	}
}

func TestTallerPlayerNamed(t *testing.T) {
	p1 := models.PlayerProfile{Name: "Short", Rank: 30, Age: 25, Height: 175}
	p2 := models.PlayerProfile{Name: "Tall", Rank: 35, Age: 25, Height: 203}

	var height string
	for _, line := range explainFor(p1, p2, 45, "hard") {
		if strings.Contains(line, "[HT]") {
			height = line
		}
	}
	if !strings.Contains(height, "Tall is 28cm taller") {
		t.Errorf("height line = %q", height)
	}
}

func TestSurfaceAlwaysEmitted(t *testing.T) {
	lines := explainFor(veteran, young, 55, "clay")

	var found bool
	for _, line := range lines {
		if strings.Contains(line, "CLAY court") {
			found = true
		}
	}
	if !found {
		t.Errorf("no surface line in %v", lines)
	}
}

func TestConclusionBranches(t *testing.T) {
	tests := []struct {
		name string
		prob float64
		want string
	}{
		{"Coin flip at 52", 52, "near coin-flip"},
		{"Coin flip at 48", 48, "near coin-flip"},
		{"Strong favorite p1", 80, "Novak Djokovic is a strong favorite"},
		{"Strong favorite p2", 20, "Carlos Alcaraz is a strong favorite"},
		{"Slight favorite p1", 62, "Novak Djokovic is a slight favorite"},
		{"Slight favorite p2", 40, "Carlos Alcaraz is a slight favorite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := explainFor(veteran, young, tt.prob, "hard")
			conclusion := lines[len(lines)-1]
			if !strings.Contains(conclusion, tt.want) {
				t.Errorf("conclusion = %q, want substring %q", conclusion, tt.want)
			}
		})
	}
}

func TestExplainIsDeterministic(t *testing.T) {
	first := explainFor(veteran, young, 63.7, "hard")
	for i := 0; i < 10; i++ {
		if got := explainFor(veteran, young, 63.7, "hard"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%v\n%v", i, got, first)
		}
	}
}

func TestOverriddenThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.RankGap = 0.5

	fv := features.BuildPair(veteran, young, features.Context{Surface: "hard"})
	lines := Explain(veteran, young, fv, 55, "hard", th)

	// With a 0.5-place threshold the 1-place gap now counts as an edge
	if !strings.Contains(lines[0], "Ranking Advantage") {
		t.Errorf("ranking line = %q, want advantage with lowered threshold", lines[0])
	}
}
