// Package sentiment scores free text on the VADER compound scale.
package sentiment

import "github.com/jonreiter/govader"

// Scorer yields a compound polarity in [-1, 1] for a piece of text. Pure
// function, no side effects.
type Scorer interface {
	Compound(text string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *vaderScorer) Compound(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
