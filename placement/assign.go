package placement

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Order determines which template is assigned to which sample.
type Order int

const (
	RoundRobin Order = iota // sample i gets template i mod K
	Shuffled                // seeded pseudo-random choice per sample
)

func (o Order) String() string {
	if o == Shuffled {
		return "shuffled"
	}
	return "round-robin"
}

// ParseOrder maps "round-robin" or "shuffled" to an order. The empty string
// denotes RoundRobin.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "round-robin", "roundrobin", "cyclic":
		return RoundRobin, nil
	case "shuffled", "random":
		return Shuffled, nil
	}
	return RoundRobin, fmt.Errorf("unknown template order %q", s)
}

// Assign returns, for n samples, the index of the template out of k to use.
// For Shuffled the choice is deterministic for a given seed.
func Assign(n, k int, order Order, seed uint64) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	idx := make([]int, n)
	if order == Shuffled {
		rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range idx {
			idx[i] = rnd.IntN(k)
		}
		return idx
	}
	cur := 0
	for i := range idx {
		idx[i] = cur
		if cur < k-1 {
			cur++
		} else {
			cur = 0
		}
	}
	return idx
}
