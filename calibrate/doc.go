// Package calibrate fits 2PL item parameters from historical response logs.
//
// [Calibrator.CalibrateBank] re-estimates each item's discrimination and
// difficulty by mini-batch gradient descent with the [Adam] optimizer and
// a cosine-annealed learning rate. The loss is binary cross-entropy
// between the 2PL-predicted probability (at the ability recorded when the
// item was served) and the observed correctness; its gradient has a
// closed form under the logistic model and is computed exactly.
//
// # Usage
//
//	cal := calibrate.NewCalibrator(calibrate.CalibratorConfig{})
//	bank, report, err := cal.CalibrateBank(ctx, bank, logs)
//
// # Data Requirements
//
// Each item needs at least MinResponses logged administrations (default
// 50) to be re-fit; items below the threshold keep their prior parameters
// and are listed in the report. Logs must carry the Theta field.
package calibrate
