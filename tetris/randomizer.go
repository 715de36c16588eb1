package tetris

import "math/rand/v2"

// Randomizer chooses the kind of each spawned piece.
type Randomizer interface {
	Next() Kind
}

// Uniform picks each kind independently with probability 1/7.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a Uniform randomizer drawing from rng.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

func (u *Uniform) Next() Kind {
	return Kind(u.rng.IntN(KindCount))
}

// Bag deals all seven kinds in shuffled order before reshuffling.
type Bag struct {
	rng *rand.Rand
	bag []Kind
}

// NewBag creates a 7-bag randomizer drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

func (b *Bag) Next() Kind {
	if len(b.bag) == 0 {
		b.bag = Kinds()
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	kind := b.bag[0]
	b.bag = b.bag[1:]
	return kind
}

// Sequence replays a fixed list of kinds, cycling when exhausted.
type Sequence struct {
	kinds []Kind
	pos   int
}

// NewSequence creates a Sequence over kinds. It panics if kinds is empty.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		panic("tetris: empty sequence")
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() Kind {
	kind := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return kind
}
