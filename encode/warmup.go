package encode

import "github.com/falk/warp/internal/codec"

// lockAlgorithm aggregates warm-up chunk metrics and returns the locked
// algorithm for the remainder of the file. Only a chunk's winning
// algorithm contributes its throughput and ratio to that algorithm's
// running mean — chunks that fell back to Copy contribute to no
// candidate's statistics. This mirrors the original implementation's
// warm-up aggregation exactly, including its bias toward algorithms that
// happened to win early chunks.
func lockAlgorithm(jobs []compressJob, mode AutoMode) codec.Algo {
	order := []codec.Algo{codec.Zstd, codec.Lz4, codec.Snappy}
	type agg struct {
		mbpsSum  float64
		ratioSum float64
		count    int
	}
	stats := make(map[codec.Algo]*agg, 3)
	for _, a := range order {
		stats[a] = &agg{}
	}

	for i := range jobs {
		j := &jobs[i]
		a, tracked := stats[j.algo]
		if !tracked {
			continue
		}
		a.mbpsSum += mibPerSec(int(j.length), j.secs)
		a.ratioSum += float64(j.compLen) / float64(j.length)
		a.count++
	}

	bestScore := negInf
	var bestAlgo codec.Algo
	for _, a := range order {
		s := stats[a]
		if s.count == 0 {
			continue
		}
		mbps := s.mbpsSum / float64(s.count)
		ratio := s.ratioSum / float64(s.count)
		var score float64
		switch mode {
		case Throughput:
			score = mbps
		case Ratio:
			score = (1 - ratio) * 1000
		default: // Balanced
			score = mbps * (1 + 3*(1-ratio))
		}
		if score > bestScore {
			bestScore = score
			bestAlgo = a
		}
	}
	if bestAlgo == 0 {
		return codec.Zstd
	}
	return bestAlgo
}

const negInf = -1e300
