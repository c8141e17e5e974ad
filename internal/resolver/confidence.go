package resolver

// Score estimates how much an answer can be trusted from its citations and verdict.
// Arithmetic is done in hundredths so results are exact two-decimal values.
func Score(sources []string, verified bool) float64 {
	score := 40
	if len(sources) > 0 {
		score += 30
	}
	if len(sources) >= 2 {
		score += 20
	}
	if verified {
		score += 10
	}
	if score > 99 {
		score = 99
	}
	return float64(score) / 100
}
