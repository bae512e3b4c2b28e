package scoring

import (
	"math"
	"testing"

	"github.com/mathquest/backend/internal/models"
)

func TestBotScoreHardBounds(t *testing.T) {
	var s UniformSampler
	for i := 0; i < 1000; i++ {
		got := BotScore(s, 20, models.DifficultyHard)
		if got < 14 || got > 19 {
			t.Fatalf("BotScore(20, HARD) = %d, want in [14, 19]", got)
		}
	}
}

func TestBotScoreWithinRoundedRange(t *testing.T) {
	var s UniformSampler
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		min, max := BotRange(d)
		for _, n := range []int{1, 5, 10, 17} {
			lo := int(math.Round(float64(n) * min))
			hi := int(math.Round(float64(n) * max))
			for i := 0; i < 200; i++ {
				got := BotScore(s, n, d)
				if got < lo || got > hi || got > n {
					t.Fatalf("BotScore(%d, %s) = %d, want in [%d, %d]", n, d, got, lo, hi)
				}
			}
		}
	}
}

func TestBotScoreUsesSampler(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		pick       func(min, max float64) float64
		count      int
		want       int
	}{
		{models.DifficultyEasy, func(min, _ float64) float64 { return min }, 10, 5},
		{models.DifficultyMedium, func(min, _ float64) float64 { return min }, 10, 6},
		{models.DifficultyHard, func(min, _ float64) float64 { return min }, 10, 7},
		{models.DifficultyHard, func(_, max float64) float64 { return max }, 20, 19},
		{models.DifficultyEasy, func(min, max float64) float64 { return (min + max) / 2 }, 8, 5},
	}

	for _, tt := range tests {
		got := BotScore(SamplerFunc(tt.pick), tt.count, tt.difficulty)
		if got != tt.want {
			t.Errorf("BotScore(%d, %s) = %d, want %d", tt.count, tt.difficulty, got, tt.want)
		}
	}
}

func TestBotRangeUnknownDifficulty(t *testing.T) {
	min, max := BotRange("IMPOSSIBLE")
	if min != 0.60 || max != 0.85 {
		t.Errorf("BotRange(unknown) = [%v, %v), want MEDIUM range", min, max)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		user, bot int
		want      models.BattleResult
	}{
		{8, 8, models.BattleDraw},
		{9, 8, models.BattleWin},
		{7, 8, models.BattleLoss},
		{0, 0, models.BattleDraw},
	}

	for _, tt := range tests {
		got := Outcome(tt.user, tt.bot)
		if got != tt.want {
			t.Errorf("Outcome(%d, %d) = %s, want %s", tt.user, tt.bot, got, tt.want)
		}
	}
}
