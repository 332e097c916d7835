// Package analysis provides post-run statistics over grown street maps.
//
// The package includes tools for summarizing a finished forest:
//
//   - [GenerationHistogram]: street count per branch depth
//   - [LengthByGeneration]: total street length per branch depth
//   - [PeakActive]: highest concurrent growth and the tick it peaked
//   - [GrowthRate]: mean streets activated per tick up to the peak
//   - [ChildrenPerLine]: mean direct children across all streets
//
// # Reading a Run
//
// The histogram functions walk the final forest; the history functions
// consume the active-count trace an experiment records each tick:
//
//	peak, tick := analysis.PeakActive(result.ActiveHistory)
//	rate := analysis.GrowthRate(result.ActiveHistory)
//
// Everything here is a pure read. Nothing advances or mutates the model.
package analysis
