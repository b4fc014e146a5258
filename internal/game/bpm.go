package game

type BPM struct {
	StartingBeat float64
	Value        float64
}

// Seconds converts a beat into seconds using a list of bpm changes sorted
// by starting beat. The first change applies from beat 0.
func Seconds(rates []BPM, beat float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	seconds := 0.0
	for i, bpm := range rates {
		end := beat
		if i+1 < len(rates) && rates[i+1].StartingBeat < beat {
			end = rates[i+1].StartingBeat
		}
		start := bpm.StartingBeat
		if i == 0 {
			start = 0
		}
		if end <= start {
			break
		}
		seconds += (end - start) * 60.0 / bpm.Value
	}
	return seconds
}
