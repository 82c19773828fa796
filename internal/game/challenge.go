package game

// IsLyingClaim reports whether the cards behind a claim convict the claimant.
// A claim is a lie when any played card has a different value than the
// claimed rank; jokers are wild and never count as lying evidence.
func IsLyingClaim(played []Card, target int) bool {
	for _, c := range played {
		if c.Value != target && !c.IsJoker() {
			return true
		}
	}
	return false
}
