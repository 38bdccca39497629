package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/kmc-sim/sim"
	"github.com/inference-sim/kmc-sim/sim/random"
)

var (
	// CLI flags for sample
	distName    string  // exponential, normal, or poisson
	sampleMean  float64 // Distribution mean
	sampleVar   float64 // Variance, normal only
	sampleCount int     // Number of deviates
	methodName  string  // Forced Poisson method; empty means dispatch on the mean
)

// ValidDistributions is the set of distributions the sample command draws from.
var ValidDistributions = map[string]bool{"exponential": true, "normal": true, "poisson": true}

// sampleOptions collects the sample flags.
type sampleOptions struct {
	Dist           string
	Mean           float64
	Variance       float64
	Count          int
	Seed           int64
	Thresholds     string
	ThresholdsFile string
	Method         string
}

// sampleSummary is what the sample command reports.
type sampleSummary struct {
	Count    int
	Mean     float64
	Variance float64
	Method   string // Poisson only
}

// drawSamples draws opts.Count deviates from the sampling stream.
func drawSamples(opts sampleOptions) ([]float64, sampleSummary, error) {
	if opts.Count <= 0 {
		return nil, sampleSummary{}, fmt.Errorf("count must be positive, got %d", opts.Count)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed))
	u := random.NewUniformFrom(rng.ForSubsystem(sim.SubsystemSampling))
	xs := make([]float64, opts.Count)
	summary := sampleSummary{Count: opts.Count}

	switch opts.Dist {
	case "exponential":
		if !(opts.Mean > 0) || math.IsInf(opts.Mean, 1) {
			return nil, summary, fmt.Errorf("exponential mean must be finite and positive, got %g", opts.Mean)
		}
		e := random.NewExponential(u)
		for i := range xs {
			xs[i] = e.SampleMean(opts.Mean)
		}
	case "normal":
		if math.IsNaN(opts.Mean) || math.IsInf(opts.Mean, 0) {
			return nil, summary, fmt.Errorf("normal mean must be finite, got %g", opts.Mean)
		}
		if !(opts.Variance >= 0) || math.IsInf(opts.Variance, 1) {
			return nil, summary, fmt.Errorf("variance must be non-negative, got %g", opts.Variance)
		}
		n := random.NewNormal(u)
		for i := range xs {
			xs[i] = n.SampleWith(opts.Mean, opts.Variance)
		}
	case "poisson":
		thresholds, err := resolveThresholds(opts.Thresholds, opts.ThresholdsFile)
		if err != nil {
			return nil, summary, err
		}
		if !(opts.Mean >= 0) || math.IsInf(opts.Mean, 1) {
			return nil, summary, fmt.Errorf("poisson mean must be finite and non-negative, got %g", opts.Mean)
		}
		p := random.NewPoisson(u, thresholds)
		method := p.Method(opts.Mean)
		if opts.Method != "" {
			if method, err = random.ParsePoissonMethod(opts.Method); err != nil {
				return nil, summary, err
			}
			if method == random.MethodInversion && opts.Mean > random.MaxInversionMean {
				return nil, summary, fmt.Errorf("inversion is limited to means up to %g", random.MaxInversionMean)
			}
		}
		summary.Method = method.String()
		for i := range xs {
			xs[i] = float64(p.SampleWith(method, opts.Mean))
		}
	default:
		return nil, summary, fmt.Errorf("unknown distribution %q (valid: exponential, normal, poisson)", opts.Dist)
	}

	summary.Mean, summary.Variance = stat.MeanVariance(xs, nil)
	return xs, summary, nil
}

// Print displays the summary in the same layout as the run metrics.
func (s sampleSummary) Print() {
	fmt.Println("=== Sample Statistics ===")
	fmt.Printf("Count                : %d\n", s.Count)
	fmt.Printf("Mean                 : %.6g\n", s.Mean)
	fmt.Printf("Variance             : %.6g\n", s.Variance)
	if s.Method != "" {
		fmt.Printf("Poisson Method       : %s\n", s.Method)
	}
}

// sampleCmd draws deviates and reports their moments
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw deviates from a distribution and report their moments",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		if !ValidDistributions[distName] {
			logrus.Fatalf("Unknown distribution %q (valid: exponential, normal, poisson)", distName)
		}
		_, summary, err := drawSamples(sampleOptions{
			Dist:           distName,
			Mean:           sampleMean,
			Variance:       sampleVar,
			Count:          sampleCount,
			Seed:           seed,
			Thresholds:     thresholdsName,
			ThresholdsFile: thresholdsFile,
			Method:         methodName,
		})
		if err != nil {
			logrus.Fatalf("Sampling failed: %v", err)
		}
		summary.Print()
	},
}

func init() {
	sampleCmd.Flags().StringVar(&distName, "dist", "poisson", "Distribution (exponential, normal, poisson)")
	sampleCmd.Flags().Float64Var(&sampleMean, "mean", 1, "Distribution mean")
	sampleCmd.Flags().Float64Var(&sampleVar, "variance", 1, "Variance of the normal distribution")
	sampleCmd.Flags().IntVar(&sampleCount, "count", 10000, "Number of deviates")
	sampleCmd.Flags().StringVar(&methodName, "method", "", "Force a Poisson method (inter-arrival, inversion, acceptance-complement, normal)")
}
