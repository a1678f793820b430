package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"irisvision/internal/dataset"
	"irisvision/internal/features"
	"irisvision/internal/report"
	"irisvision/internal/session"
)

type feedbackMode int

const (
	feedbackNone feedbackMode = iota
	feedbackCorrect
	feedbackIncorrect
	feedbackAsk
)

func parseFeedbackMode(s string) (feedbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return feedbackNone, nil
	case "correct":
		return feedbackCorrect, nil
	case "incorrect":
		return feedbackIncorrect, nil
	case "ask":
		return feedbackAsk, nil
	default:
		return feedbackNone, errors.Errorf("unknown feedback mode %q", s)
	}
}

// loadPixels decodes every path concurrently. Images that fail to decode are
// logged and left nil.
func loadPixels(ctx context.Context, paths []string, maxSide int) ([][]byte, error) {
	pixels := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pix, err := features.Load(path, maxSide)
			if err != nil {
				klog.Warningf("skipping %s: %v", path, err)
				return nil
			}
			pixels[i] = pix
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pixels, nil
}

func classifyImages(ctx context.Context, sess *session.Session, root string, maxSide int, mode feedbackMode, in io.Reader, out io.Writer) error {
	paths, err := dataset.DiscoverImages(root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.Errorf("no images under %s", root)
	}
	klog.Infof("classifying %s images", humanize.Comma(int64(len(paths))))

	pixels, err := loadPixels(ctx, paths, maxSide)
	if err != nil {
		return err
	}

	answers := bufio.NewScanner(in)
	for i, path := range paths {
		if pixels[i] == nil {
			continue
		}
		c, ok, err := sess.ClassifyPixels(pixels[i])
		if err != nil {
			klog.Warningf("skipping %s: %v", path, err)
			continue
		}
		if !ok {
			return errors.New("model is not ready")
		}
		name := filepath.Base(path)
		fmt.Fprintln(out, report.Classification(name, c))

		confirmed, give := mode.answer(answers, out)
		if !give {
			continue
		}
		score, ok := sess.SubmitFeedback(confirmed)
		if ok {
			fmt.Fprintf(out, "%s: corrected output %.4f -> %.4f (%s corrections)\n",
				name, c.Score, score, humanize.Comma(int64(sess.Corrections())))
		}
	}
	return nil
}

// answer reports whether the reviewer confirmed the prediction and whether
// any feedback was given at all.
func (m feedbackMode) answer(answers *bufio.Scanner, out io.Writer) (confirmed, give bool) {
	switch m {
	case feedbackCorrect:
		return true, true
	case feedbackIncorrect:
		return false, true
	case feedbackAsk:
		fmt.Fprint(out, "Is the prediction correct? [y/n, enter to skip] ")
		if !answers.Scan() {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(answers.Text())) {
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		}
	}
	return false, false
}
