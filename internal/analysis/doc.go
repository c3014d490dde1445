// Package analysis inspects recorded frame series.
//
// [PowerSpectrum] and [DominantFrequency] look for periodic structure in a
// column such as particle count, which shows up when a run is driven by a
// periodic trigger. [Summarize] gives basic statistics.
//
//	series := analysis.PadPow2(counts)
//	if peak, ok := analysis.DominantFrequency(series, 60); ok {
//	    fmt.Printf("period %.2fs\n", peak.Period)
//	}
package analysis
