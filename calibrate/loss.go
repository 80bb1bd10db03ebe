package calibrate

import (
	"math"

	"github.com/adapt-sciences/adapt"
)

const bceClamp = 1e-7

// bceLoss computes the binary cross-entropy loss: -[y*ln(p) + (1-y)*ln(1-p)].
// p is clamped to [bceClamp, 1-bceClamp] to avoid log(0).
func bceLoss(p, y float64) float64 {
	p = math.Max(bceClamp, math.Min(p, 1-bceClamp))
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

// predict evaluates the 2PL response probability for candidate
// parameters params = {discrimination, difficulty} at theta.
func predict(params [2]float64, theta float64) float64 {
	return adapt.ProbabilityCorrect(adapt.Item{
		Discrimination: params[0],
		Difficulty:     params[1],
	}, theta)
}

// batchLoss computes the average BCE loss of the candidate parameters
// over the observations. Returns 0 for an empty batch.
func batchLoss(params [2]float64, obs []observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	var total float64
	for _, o := range obs {
		total += bceLoss(predict(params, o.theta), o.label)
	}
	return total / float64(len(obs))
}

// lossGradient computes the exact gradient of batchLoss at params.
// For the logistic p = σ(a·(θ−b)) the BCE derivative with respect to the
// logit collapses to the residual p − y, so per observation
//
//	∂L/∂a = (p − y) · (θ − b)
//	∂L/∂b = −a · (p − y)
//
// averaged over the batch. Returns the zero gradient for an empty batch.
func lossGradient(params [2]float64, obs []observation) [2]float64 {
	var grad [2]float64
	if len(obs) == 0 {
		return grad
	}
	for _, o := range obs {
		residual := predict(params, o.theta) - o.label
		grad[0] += residual * (o.theta - params[1])
		grad[1] -= residual * params[0]
	}
	n := float64(len(obs))
	grad[0] /= n
	grad[1] /= n
	return grad
}
