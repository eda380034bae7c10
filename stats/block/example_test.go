package block_test

import (
	"fmt"

	"github.com/cwbudde/algo-blosc/stats/block"
)

func ExampleCalculate() {
	s := block.Calculate([]byte{7, 7, 9, 9})
	fmt.Printf("entropy=%.2f runs=%d distinct=%d\n", s.Entropy, s.Runs, s.Distinct)

	// Output:
	// entropy=1.00 runs=2 distinct=2
}

func ExampleHistogram() {
	h := block.NewHistogram()
	h.Update([]byte{0, 0, 0, 0})
	h.Update([]byte{1, 2, 3, 4})
	fmt.Printf("len=%d entropy=%.2f\n", h.Len(), h.Entropy())

	// Output:
	// len=8 entropy=2.00
}
