// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package janus

// addOp is scalar addition. The gradient passes through unchanged to
// both inputs.
type addOp struct{}

func (addOp) Forward(inputs ...float64) float64 {
	return inputs[0] + inputs[1]
}

func (addOp) Backward(grad float64) []float64 {
	return []float64{grad, grad}
}

// mulOp is scalar multiplication. Each input's gradient is the
// incoming gradient scaled by the other input, so the forward inputs
// are captured at construction time.
type mulOp struct {
	inputs [2]float64
}

func (m mulOp) Forward(inputs ...float64) float64 {
	return inputs[0] * inputs[1]
}

func (m mulOp) Backward(grad float64) []float64 {
	return []float64{grad * m.inputs[1], grad * m.inputs[0]}
}
