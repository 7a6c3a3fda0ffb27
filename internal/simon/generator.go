package simon

// DoubleStepChance is the probability that a Hard step asks for two pads.
const DoubleStepChance = 0.30

// Rand is the randomness a generator needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NextStep draws the next step for the given difficulty.
//
// Easy picks one of Blue, Green and Red. Medium picks one of all four pads.
// Hard behaves like Medium except that, with DoubleStepChance, it returns two
// distinct pads to be pressed together.
func NextStep(d Difficulty, rng Rand) ColorSet {
	switch d {
	case Easy:
		return SetOf(easyColors[rng.Intn(len(easyColors))])
	case Hard:
		if rng.Float64() < DoubleStepChance {
			first := AllColors[rng.Intn(len(AllColors))]
			second := first
			for second == first {
				second = AllColors[rng.Intn(len(AllColors))]
			}
			return SetOf(first, second)
		}
	}
	return SetOf(AllColors[rng.Intn(len(AllColors))])
}
