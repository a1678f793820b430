package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"irisvision/internal/config"
	"irisvision/internal/dataset"
	"irisvision/internal/report"
	"irisvision/internal/session"
	"irisvision/internal/trainer"
)

func main() {
	klog.InitFlags(nil)
	cfgPath := flag.String("config", "", "Path to YAML config (defaults apply when empty)")
	learningRate := flag.Float64("learning-rate", 0, "Override learning rate, in (0, 1]")
	epochs := flag.Int("epochs", 0, "Override epoch ceiling")
	tick := flag.Duration("tick", 0, "Override the delay between two epochs")
	seed := flag.Int64("seed", 0, "PRNG seed for weight initialization")
	logEvery := flag.Int("log-every", 0, "Log every N epochs")
	datasetPath := flag.String("dataset", "", "CSV dataset to train on instead of the built-in Iris rows")
	plotDir := flag.String("plot-dir", "", "Directory to write loss and prediction charts to")
	images := flag.String("images", "", "Image file or directory of images to classify after training")
	feedbackMode := flag.String("feedback", "", "Feedback after each classification: correct, incorrect or ask")
	progress := flag.Bool("progress", false, "Show a progress bar while training")

	flag.Parse()
	defer klog.Flush()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		klog.Fatalf("failed to load config: %+v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *learningRate,
		MaxEpochs:    *epochs,
		TickInterval: *tick,
		Seed:         *seed,
		LogEvery:     *logEvery,
		DatasetPath:  *datasetPath,
		PlotDir:      *plotDir,
	})

	if err := cfg.Validate(); err != nil {
		klog.Fatalf("invalid config: %+v", err)
	}
	mode, err := parseFeedbackMode(*feedbackMode)
	if err != nil {
		klog.Fatalf("invalid -feedback: %+v", err)
	}

	samples := dataset.Iris()
	if cfg.DatasetPath != "" {
		samples, err = dataset.LoadCSV(cfg.DatasetPath)
		if err != nil {
			klog.Fatalf("failed to load dataset: %+v", err)
		}
	}
	klog.Infof("dataset samples=%d learning_rate=%g max_epochs=%d", len(samples), cfg.LearningRate, cfg.MaxEpochs)

	sess, err := session.New(samples, session.Options{
		LearningRate:  cfg.LearningRate,
		MaxEpochs:     cfg.MaxEpochs,
		PredictEvery:  cfg.PredictEvery,
		FeedbackSteps: cfg.FeedbackSteps,
		Seed:          cfg.Seed,
	})
	if err != nil {
		klog.Fatalf("failed to create session: %+v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	sess.Start()
	err = trainer.Run(ctx, sess, trainer.RunConfig{
		TickInterval: cfg.TickInterval,
		LogEvery:     cfg.LogEvery,
		MaxEpochs:    cfg.MaxEpochs,
		NumSamples:   sess.NumSamples(),
		ShowProgress: *progress,
	})
	sess.Stop()
	switch {
	case errors.Is(err, context.Canceled):
		klog.Warningf("training interrupted at epoch %d", sess.Epoch())
	case err != nil:
		klog.Fatalf("training failed: %+v", err)
	}
	klog.Infof("trained %d epochs in %s, accuracy=%.1f%%", sess.Epoch(), time.Since(start).Round(time.Millisecond), sess.Accuracy())

	fmt.Println(report.PredictionTable(sess.Predictions()))
	fmt.Println(report.Summary(sess))

	if cfg.PlotDir != "" {
		written, err := report.WritePlots(cfg.PlotDir, sess.History(), sess.Predictions())
		if err != nil {
			klog.Fatalf("failed to write plots: %+v", err)
		}
		for _, path := range written {
			klog.Infof("wrote %s", path)
		}
	}

	if *images == "" || ctx.Err() != nil {
		return
	}
	if sess.Epoch() < cfg.MinClassifyEpochs {
		klog.Warningf("model trained for %d epochs, at least %d are required before classifying images", sess.Epoch(), cfg.MinClassifyEpochs)
		return
	}
	if err := classifyImages(ctx, sess, *images, cfg.ImageMaxSide, mode, os.Stdin, os.Stdout); err != nil {
		klog.Fatalf("classification failed: %+v", err)
	}
	fmt.Println(report.Summary(sess))
}
