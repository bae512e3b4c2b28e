package scoring

import (
	"math"
	"math/rand"

	"github.com/mathquest/backend/internal/models"
)

// Sampler draws a ratio in [min, max).
type Sampler interface {
	Sample(min, max float64) float64
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(min, max float64) float64

func (f SamplerFunc) Sample(min, max float64) float64 {
	return f(min, max)
}

// UniformSampler draws from the package-level math/rand source, which is
// safe for concurrent use.
type UniformSampler struct{}

func (UniformSampler) Sample(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

type ratioRange struct {
	min, max float64
}

// botRanges maps each difficulty to the share of questions the bot gets right.
var botRanges = map[models.Difficulty]ratioRange{
	models.DifficultyEasy:   {0.50, 0.75},
	models.DifficultyMedium: {0.60, 0.85},
	models.DifficultyHard:   {0.70, 0.95},
}

// BotRange returns the ratio interval for a difficulty. Unknown difficulties
// fall back to MEDIUM.
func BotRange(difficulty models.Difficulty) (min, max float64) {
	r, ok := botRanges[difficulty]
	if !ok {
		r = botRanges[models.DifficultyMedium]
	}
	return r.min, r.max
}

// BotScore simulates the opponent's score for a battle of answerCount questions.
func BotScore(s Sampler, answerCount int, difficulty models.Difficulty) int {
	min, max := BotRange(difficulty)
	ratio := s.Sample(min, max)
	return int(math.Round(float64(answerCount) * ratio))
}

// Outcome compares scores exactly; equal scores are a draw.
func Outcome(userScore, botScore int) models.BattleResult {
	switch {
	case userScore > botScore:
		return models.BattleWin
	case userScore < botScore:
		return models.BattleLoss
	default:
		return models.BattleDraw
	}
}
