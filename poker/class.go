package poker

// HandClass is the suit-independent class of a starting hand: a pocket
// pair ("QQ"), a suited hand ("AKs") or an offsuit hand ("AKo").
type HandClass struct {
	High   uint8
	Low    uint8
	Suited bool
}

// Class returns the starting-hand class of the hole cards.
func (h HoleCards) Class() HandClass {
	hi, lo := h.split()
	return HandClass{
		High:   hi.Rank(),
		Low:    lo.Rank(),
		Suited: hi.Suit() == lo.Suit(),
	}
}

// IsPair reports whether the class is a pocket pair.
func (c HandClass) IsPair() bool {
	return c.High == c.Low
}

// Combos returns the number of distinct hole cards in the class:
// 6 for pairs, 4 for suited and 12 for offsuit hands.
func (c HandClass) Combos() int {
	switch {
	case c.IsPair():
		return 6
	case c.Suited:
		return 4
	default:
		return 12
	}
}

// String returns the class notation, e.g. "AA", "AKs", "T9o".
func (c HandClass) String() string {
	s := []byte{RankChar(c.High), RankChar(c.Low)}
	switch {
	case c.IsPair():
	case c.Suited:
		s = append(s, 's')
	default:
		s = append(s, 'o')
	}
	return string(s)
}
