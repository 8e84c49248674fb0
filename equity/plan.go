package equity

import (
	"github.com/lox/holdem-equity/internal/randutil"
)

const (
	// Trials per simulation chunk before the chunk count is capped.
	simulationChunkTrials = 1000
	// Target branches per exact chunk.
	exactChunkBranches = 1 << 15
	maxChunks          = 256
)

// chunk is one unit of scheduled work. For exact runs [start, end) indexes
// work items; for simulations end-start is the trial count.
type chunk struct {
	start int
	end   int
	seed  uint64
}

// planSimulation splits trials evenly into chunks, each with its own seed
// derived from the base seed and the chunk index.
func planSimulation(trials int, seed uint64) []chunk {
	count := min(max(ceilDiv(int64(trials), simulationChunkTrials), 1), maxChunks)
	n := int(count)
	per, rem := trials/n, trials%n

	chunks := make([]chunk, n)
	start := 0
	for j := range chunks {
		size := per
		if j < rem {
			size++
		}
		chunks[j] = chunk{start: start, end: start + size, seed: randutil.Derive(seed, uint64(j))}
		start += size
	}
	return chunks
}

// exactItemSizes returns the number of boards behind each work item of one
// assignment. Item f deals remaining-deck card f as the lowest missing board
// card, leaving C(n-1-f, m-1) ways to finish the board.
func exactItemSizes(deckSize, missing int) []int64 {
	if missing == 0 {
		return []int64{1}
	}
	sizes := make([]int64, deckSize-missing+1)
	for f := range sizes {
		sizes[f] = binomial(deckSize-1-f, missing-1)
	}
	return sizes
}

// planExact partitions assignments × items into contiguous chunks of
// roughly equal branch counts. The partition depends only on the workload.
func planExact(assignments int, sizes []int64) []chunk {
	var perAssignment int64
	for _, s := range sizes {
		perAssignment += s
	}
	total := int64(assignments) * perAssignment
	if total == 0 {
		return nil
	}
	target := min(max(ceilDiv(total, exactChunkBranches), 1), maxChunks)

	items := assignments * len(sizes)
	var (
		chunks []chunk
		start  int
		acc    int64
		next   = int64(1)
	)
	for item := range items {
		acc += sizes[item%len(sizes)]
		if acc*target < next*total {
			continue
		}
		chunks = append(chunks, chunk{start: start, end: item + 1})
		start = item + 1
		for next*total <= acc*target {
			next++
		}
	}
	if start < items {
		chunks = append(chunks, chunk{start: start, end: items})
	}
	return chunks
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
