package kpi

import (
	"orderscope/internal/model"
	"orderscope/internal/stats"
)

// ChannelComparison holds the per-order revenue means of two channels and
// the bootstrap interval around their difference.
type ChannelComparison struct {
	ChannelA string `json:"channelA"`
	ChannelB string `json:"channelB"`

	MeanA    float64 `json:"meanA"`
	MeanB    float64 `json:"meanB"`
	SamplesA int     `json:"samplesA"`
	SamplesB int     `json:"samplesB"`

	Diff float64 `json:"diff"`
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
}

// CompareChannels resamples the per-order revenue of two channels through
// the given estimator. Empty channels collapse to zero means and a
// degenerate interval, never a fault.
func CompareChannels(orders []model.EnrichedOrder, channelA, channelB string, est *stats.Estimator) ChannelComparison {
	sampleA := channelRevenues(orders, channelA)
	sampleB := channelRevenues(orders, channelB)
	ci := est.MeanDiffCI(sampleA, sampleB)
	return ChannelComparison{
		ChannelA: channelA,
		ChannelB: channelB,
		MeanA:    stats.Mean(sampleA),
		MeanB:    stats.Mean(sampleB),
		SamplesA: len(sampleA),
		SamplesB: len(sampleB),
		Diff:     ci.Diff,
		Lo:       ci.Lo,
		Hi:       ci.Hi,
	}
}

func channelRevenues(orders []model.EnrichedOrder, channel string) []float64 {
	var out []float64
	for _, o := range orders {
		if o.Channel == channel {
			out = append(out, o.Revenue)
		}
	}
	return out
}
