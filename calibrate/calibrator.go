package calibrate

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/adapt-sciences/adapt"
)

var (
	// ErrEmptyLogs is returned when no response logs are provided.
	ErrEmptyLogs = errors.New("calibrate: no response logs provided")

	// ErrInsufficientData is returned when no item in the bank has enough
	// logged administrations to be re-fit.
	ErrInsufficientData = errors.New("calibrate: insufficient responses for calibration")
)

// Parameter bounds for fitting: discrimination in [0.2, 3.5], difficulty
// in [-4, 4].
var (
	LowerBounds = [2]float64{0.2, -4.0}
	UpperBounds = [2]float64{3.5, 4.0}
)

// CalibratorConfig configures the training process.
// Zero values are replaced with sensible defaults.
type CalibratorConfig struct {
	Epochs        int     `json:"epochs"`          // default 5
	MiniBatchSize int     `json:"mini_batch_size"` // default 32
	LearningRate  float64 `json:"learning_rate"`   // default 0.05
	MinResponses  int     `json:"min_responses"`   // default 50
}

// Calibrator re-fits item parameters from response logs using
// mini-batch gradient descent with Adam and cosine annealing learning rate.
type Calibrator struct {
	epochs        int
	miniBatchSize int
	learningRate  float64
	minResponses  int
}

// Report summarizes a calibration run: which items were re-fit and which
// kept their prior parameters for lack of data.
type Report struct {
	Calibrated []string           `json:"calibrated"`
	Skipped    []string           `json:"skipped"`
	Loss       map[string]float64 `json:"loss"` // final mean BCE per calibrated item
}

// NewCalibrator creates a Calibrator with the given config.
// Fields that are zero or negative receive defaults: Epochs=5,
// MiniBatchSize=32, LearningRate=0.05, MinResponses=50.
func NewCalibrator(cfg CalibratorConfig) *Calibrator {
	c := &Calibrator{
		epochs:        cfg.Epochs,
		miniBatchSize: cfg.MiniBatchSize,
		learningRate:  cfg.LearningRate,
		minResponses:  cfg.MinResponses,
	}
	if c.epochs <= 0 {
		c.epochs = 5
	}
	if c.miniBatchSize <= 0 {
		c.miniBatchSize = 32
	}
	if c.learningRate <= 0 {
		c.learningRate = 0.05
	}
	if c.minResponses <= 0 {
		c.minResponses = 50
	}
	return c
}

// CalibrateBank re-estimates discrimination and difficulty for every bank
// item with at least MinResponses logged administrations, starting each
// fit from the item's current parameters. Items below the threshold keep
// their prior values and appear in the report's Skipped list.
//
// Returns ErrEmptyLogs if logs is empty, or ErrInsufficientData (along
// with the unchanged bank) if no item clears the threshold. The context
// can be used to cancel long-running calibration between epochs.
func (c *Calibrator) CalibrateBank(ctx context.Context, bank *adapt.ItemBank, logs []adapt.ResponseLog) (*adapt.ItemBank, Report, error) {
	if len(logs) == 0 {
		return bank, Report{}, ErrEmptyLogs
	}

	data := formatLogs(logs)
	report := Report{Loss: make(map[string]float64)}

	items := bank.Items()
	calibrated := 0
	for i, it := range items {
		obs := data[it.ID]
		if len(obs) < c.minResponses {
			report.Skipped = append(report.Skipped, it.ID)
			continue
		}

		params, loss, err := c.fitItem(ctx, it, obs)
		if err != nil {
			return bank, report, err
		}
		items[i].Discrimination = params[0]
		items[i].Difficulty = params[1]
		report.Calibrated = append(report.Calibrated, it.ID)
		report.Loss[it.ID] = loss
		calibrated++
	}

	if calibrated == 0 {
		return bank, report, ErrInsufficientData
	}

	refit, err := adapt.NewItemBank(items)
	if err != nil {
		return bank, report, err
	}
	return refit, report, nil
}

// fitItem trains one item's parameters against its observations and
// returns the best parameters with their full-data loss.
func (c *Calibrator) fitItem(ctx context.Context, it adapt.Item, obs []observation) ([2]float64, float64, error) {
	params := clampParams([2]float64{it.Discrimination, it.Difficulty})
	tMax := int(math.Ceil(float64(len(obs))/float64(c.miniBatchSize))) * c.epochs
	adam := NewAdam(c.learningRate)
	sched := newCosineLR(c.learningRate, tMax)
	rng := rand.New(rand.NewSource(42))

	idx := make([]int, len(obs))
	for i := range idx {
		idx[i] = i
	}

	bestParams := params
	bestLoss := math.Inf(1)

	for epoch := 0; epoch < c.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return bestParams, bestLoss, err
		}

		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})

		batch := make([]observation, 0, c.miniBatchSize)
		for _, j := range idx {
			batch = append(batch, obs[j])
			if len(batch) >= c.miniBatchSize {
				adam.SetLR(sched.lr())
				params = clampParams(adam.Update(params, lossGradient(params, batch)))
				sched.advance()
				batch = batch[:0]
			}
		}

		// Handle remaining observations at end of epoch.
		if len(batch) > 0 {
			adam.SetLR(sched.lr())
			params = clampParams(adam.Update(params, lossGradient(params, batch)))
			sched.advance()
		}

		// Track best parameters by epoch loss.
		epochLoss := batchLoss(params, obs)
		if epochLoss < bestLoss {
			bestLoss = epochLoss
			bestParams = params
		}
	}

	return bestParams, bestLoss, nil
}

// clampParams constrains the parameters to [LowerBounds, UpperBounds].
func clampParams(params [2]float64) [2]float64 {
	for i := 0; i < 2; i++ {
		if params[i] < LowerBounds[i] {
			params[i] = LowerBounds[i]
		}
		if params[i] > UpperBounds[i] {
			params[i] = UpperBounds[i]
		}
	}
	return params
}
