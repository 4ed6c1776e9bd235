package adp

import "time"

// aggregatePool computes one PoolResult per player from the events of a single
// format pool. Events must already be restricted to the age window. Players
// whose every observation is discarded by outlier filtering get no entry and
// fall through to the seed-or-drop logic downstream. The second return value
// is the pool-wide count of outliers removed.
func aggregatePool(events []PickEvent, now time.Time, params Parameters) (map[string]PoolResult, int) {
	byPlayer := make(map[string][]PickEvent)
	for _, ev := range events {
		byPlayer[ev.PlayerID] = append(byPlayer[ev.PlayerID], ev)
	}

	results := make(map[string]PoolResult, len(byPlayer))
	outliersRemoved := 0

	for playerID, playerEvents := range byPlayer {
		picks := make([]int, len(playerEvents))
		for i, ev := range playerEvents {
			picks[i] = ev.PickNumber
		}

		kept, removed := filterOutliers(picks, params.OutlierThresholdStdDevs)
		outliersRemoved += removed
		if len(kept) == 0 {
			continue
		}

		surviving := make(map[int]int, len(kept))
		for _, p := range kept {
			surviving[p]++
		}

		var weightedSum, weightSum float64
		best, worst := kept[0], kept[0]
		for _, ev := range playerEvents {
			if surviving[ev.PickNumber] == 0 {
				continue
			}
			surviving[ev.PickNumber]--
			w := recencyWeight(ev.PickedAt, now, params.DecayDays)
			weightedSum += float64(ev.PickNumber) * w
			weightSum += w
			if ev.PickNumber < best {
				best = ev.PickNumber
			}
			if ev.PickNumber > worst {
				worst = ev.PickNumber
			}
		}

		results[playerID] = PoolResult{
			WeightedADP: weightedSum / weightSum,
			PickCount:   len(kept),
			BestPick:    best,
			WorstPick:   worst,
			StdDev:      popStdDev(kept),
		}
	}

	return results, outliersRemoved
}
