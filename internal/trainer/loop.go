package trainer

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"irisvision/internal/metrics"
)

// Stepper advances training by at most one epoch. ok is false when no epoch
// ran, which ends the loop.
type Stepper interface {
	Step() (rec Record, ok bool, err error)
}

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	// TickInterval separates two epochs. Zero runs them back to back.
	TickInterval time.Duration
	LogEvery     int
	// MaxEpochs sizes the progress bar.
	MaxEpochs    int
	NumSamples   int
	ShowProgress bool
}

// Run calls s.Step once per tick until it reports that no epoch ran or ctx
// is done. An epoch that already started always finishes.
func Run(ctx context.Context, s Stepper, cfg RunConfig) error {
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}

	var tick <-chan time.Time
	if cfg.TickInterval > 0 {
		ticker := time.NewTicker(cfg.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var bar *progressbar.ProgressBar
	if cfg.ShowProgress && cfg.MaxEpochs > 0 {
		bar = progressbar.NewOptions(cfg.MaxEpochs,
			progressbar.OptionSetDescription("training"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("epochs"),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
		)
		defer func() { _ = bar.Finish() }()
	}

	var window metrics.Window
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		rec, ok, err := s.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		window.Record(cfg.NumSamples, time.Since(start), rec.Loss)
		klog.V(2).Infof("epoch=%d loss=%.6f", rec.Epoch, rec.Loss)
		if bar != nil {
			_ = bar.Add(1)
		}

		if rec.Epoch%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			klog.Infof("epoch=%d epochs_per_sec=%.1f samples_per_sec=%.1f compute_ms=%.3f loss=%.6f",
				rec.Epoch,
				snap.EpochsPerSec,
				snap.SamplesPerSec,
				snap.AvgComputeMS,
				snap.LastLoss,
			)
		}
	}
}
