// Package uploader contains the batch scheduler: it partitions a run of
// numbered artifacts into fixed-size batches and drives an injected
// automation driver through one upload cycle per batch.
package uploader

// Batch is a contiguous sub-range of 1-based artifact indices uploaded in a
// single interaction cycle.
type Batch struct {
	Ordinal int // 0-based position in the plan
	Start   int // first artifact index, inclusive
	End     int // last artifact index, inclusive
}

// Size returns the number of artifacts in the batch.
func (b Batch) Size() int {
	return b.End - b.Start + 1
}

// Plan partitions artifact indices 1..totalArtifacts into batches of at most
// batchSize, in ascending order with no gaps or overlap. Only the final
// batch may be short. Returns nil when totalArtifacts or batchSize is not
// positive.
func Plan(totalArtifacts, batchSize int) []Batch {
	if totalArtifacts <= 0 || batchSize <= 0 {
		return nil
	}

	numBatches := totalArtifacts / batchSize
	if totalArtifacts%batchSize != 0 {
		numBatches++
	}

	batches := make([]Batch, 0, numBatches)
	for b := 0; b < numBatches; b++ {
		start := b*batchSize + 1
		end := (b + 1) * batchSize
		if end > totalArtifacts {
			end = totalArtifacts
		}
		batches = append(batches, Batch{Ordinal: b, Start: start, End: end})
	}
	return batches
}
