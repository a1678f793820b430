// Package session owns the mutable state of one classifier: weights, epoch
// counter, loss history, batch predictions and the last classified vector.
//
// Training epochs and feedback corrections both write the weights; a single
// mutex keeps them mutually exclusive, and readers always receive complete
// snapshots.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"irisvision/internal/dataset"
	"irisvision/internal/features"
	"irisvision/internal/feedback"
	"irisvision/internal/metrics"
	"irisvision/internal/model"
	"irisvision/internal/normalize"
	"irisvision/internal/trainer"
)

var (
	// ErrTrainingActive is returned when a setting may only change while
	// training is stopped.
	ErrTrainingActive = errors.New("session: training is active")
	// ErrLearningRate is returned for a learning rate outside (0, 1].
	ErrLearningRate = errors.New("session: learning rate must be in (0, 1]")
)

// Defaults used when an Options field is zero.
const (
	DefaultLearningRate = 0.1
	DefaultMaxEpochs    = 500
	DefaultPredictEvery = 10
)

// Options configures a Session.
type Options struct {
	LearningRate  float64
	MaxEpochs     int
	PredictEvery  int
	FeedbackSteps int
	Seed          int64
}

func (o *Options) setDefaults() {
	if o.LearningRate == 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.MaxEpochs <= 0 {
		o.MaxEpochs = DefaultMaxEpochs
	}
	if o.PredictEvery <= 0 {
		o.PredictEvery = DefaultPredictEvery
	}
	if o.FeedbackSteps <= 0 {
		o.FeedbackSteps = feedback.DefaultSteps
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}

// Classification is the last vector handed to Classify and its score.
type Classification struct {
	Features features.Vector
	Score    float64
}

// Session coordinates training, inference and feedback over one dataset.
type Session struct {
	mu sync.RWMutex

	samples []dataset.Sample
	opts    Options
	rng     *rand.Rand

	weights     *model.Weights
	active      bool
	epoch       int
	history     []trainer.Record
	predictions []trainer.Prediction
	corrections int
	last        *Classification
}

// New builds a session over samples. The samples are copied.
func New(samples []dataset.Sample, opts Options) (*Session, error) {
	if len(samples) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	opts.setDefaults()
	if !validRate(opts.LearningRate) {
		return nil, errors.Wrapf(ErrLearningRate, "got %g", opts.LearningRate)
	}
	return &Session{
		samples: append([]dataset.Sample(nil), samples...),
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

func validRate(lr float64) bool {
	return lr > 0 && lr <= 1
}

// Start enables training, creating weights on the first call.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureWeights()
	s.active = true
	klog.V(1).Infof("training started at epoch %d", s.epoch)
}

// Stop disables training. The current epoch, if any, has already finished.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Reset discards weights, history, predictions, counters and the last
// classification, and stops training.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = nil
	s.active = false
	s.epoch = 0
	s.history = nil
	s.predictions = nil
	s.corrections = 0
	s.last = nil
	klog.V(1).Info("session reset")
}

// SetLearningRate changes the learning rate. Only allowed while stopped.
func (s *Session) SetLearningRate(lr float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrTrainingActive
	}
	if !validRate(lr) {
		return errors.Wrapf(ErrLearningRate, "got %g", lr)
	}
	s.opts.LearningRate = lr
	return nil
}

func (s *Session) ensureWeights() {
	if s.weights == nil {
		w := model.NewWeights(s.rng)
		s.weights = &w
	}
}

// Step trains one epoch if training is active and below the epoch ceiling.
// It reports false when no epoch ran. Reaching the ceiling stops training.
func (s *Session) Step() (trainer.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return trainer.Record{}, false, nil
	}
	if s.epoch >= s.opts.MaxEpochs {
		s.active = false
		return trainer.Record{}, false, nil
	}
	s.ensureWeights()

	w, loss, err := trainer.TrainEpoch(s.samples, *s.weights, s.opts.LearningRate)
	if err != nil {
		s.active = false
		return trainer.Record{}, false, errors.WithMessagef(err, "epoch %d", s.epoch+1)
	}
	s.weights = &w
	s.epoch++
	rec := trainer.Record{Epoch: s.epoch, Loss: loss}
	s.history = append(s.history, rec)

	if s.epoch%s.opts.PredictEvery == 0 {
		s.predictions = trainer.Evaluate(s.samples, w)
	}
	if s.last != nil {
		s.last.Score = w.Predict(s.normalized(s.last.Features))
	}
	if s.epoch >= s.opts.MaxEpochs {
		s.active = false
		klog.V(1).Infof("epoch ceiling %d reached", s.opts.MaxEpochs)
	}
	return rec, true, nil
}

func (s *Session) normalized(v features.Vector) [model.Inputs]float64 {
	return normalize.ComputeStats(s.samples).Apply(v)
}

// Classify scores v against the current weights and remembers it for
// feedback. It is a no-op reporting false while no weights exist.
func (s *Session) Classify(v features.Vector) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weights == nil {
		return 0, false
	}
	score := s.weights.Predict(s.normalized(v))
	s.last = &Classification{Features: v, Score: score}
	return score, true
}

// ClassifyPixels extracts features from an RGBA buffer and classifies them.
func (s *Session) ClassifyPixels(pix []byte) (Classification, bool, error) {
	v, err := features.Extract(pix)
	if err != nil {
		return Classification{}, false, err
	}
	score, ok := s.Classify(v)
	return Classification{Features: v, Score: score}, ok, nil
}

// SubmitFeedback corrects the model on the last classified vector. confirmed
// reports whether the reviewer agreed with the prediction. It is a no-op
// reporting false without weights or without a prior classification.
func (s *Session) SubmitFeedback(confirmed bool) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weights == nil || s.last == nil {
		return 0, false
	}
	w, score := feedback.Correct(s.normalized(s.last.Features), *s.weights, s.last.Score, confirmed,
		s.opts.LearningRate, s.opts.FeedbackSteps)
	s.weights = &w
	s.corrections++
	s.last.Score = score
	return score, true
}

// Epoch is the number of finished epochs.
func (s *Session) Epoch() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Active reports whether training is enabled.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// LearningRate returns the current learning rate.
func (s *Session) LearningRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts.LearningRate
}

// MaxEpochs returns the epoch ceiling.
func (s *Session) MaxEpochs() int {
	return s.opts.MaxEpochs
}

// NumSamples returns the dataset size.
func (s *Session) NumSamples() int {
	return len(s.samples)
}

// History returns a copy of the (epoch, loss) records.
func (s *Session) History() []trainer.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]trainer.Record(nil), s.history...)
}

// Predictions returns the batch predictions from the latest evaluated epoch.
func (s *Session) Predictions() []trainer.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]trainer.Prediction(nil), s.predictions...)
}

// Accuracy is the percentage of the latest batch predictions that round to
// their label, 0 before any evaluation.
func (s *Session) Accuracy() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return metrics.Accuracy(trainer.Scores(s.predictions))
}

// Corrections counts applied feedback corrections.
func (s *Session) Corrections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corrections
}

// Last returns the last classification.
func (s *Session) Last() (Classification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Classification{}, false
	}
	return *s.last, true
}

// Weights returns a snapshot of the current weights.
func (s *Session) Weights() (model.Weights, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.weights == nil {
		return model.Weights{}, false
	}
	return *s.weights, true
}
