// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package janus is a tiny scalar-valued autograd engine. A Tensor wraps
// a single float64 and records the operation that produced it, so a
// backward pass can propagate gradients through the computation graph.
package janus

// Tensor is a scalar value with support for automatic differentiation.
type Tensor struct {
	// Data is the scalar value.
	Data float64

	creators   []*Tensor
	creationOp Function

	grad    float64
	hasGrad bool
}

// NewTensor creates a leaf tensor holding the given value.
func NewTensor(data float64) *Tensor {
	return &Tensor{Data: data}
}

// Grad returns the accumulated gradient. The second return value is
// false until a backward pass has reached this tensor.
func (t *Tensor) Grad() (float64, bool) {
	return t.grad, t.hasGrad
}

// Backward propagates the given gradient through the graph that
// produced this tensor. Gradients accumulate across calls, so a tensor
// reached along several paths sums the contributions.
func (t *Tensor) Backward(grad float64) {
	if t.hasGrad {
		t.grad += grad
	} else {
		t.grad = grad
		t.hasGrad = true
	}

	if t.creationOp == nil {
		return
	}
	grads := t.creationOp.Backward(grad)
	for i, creator := range t.creators {
		creator.Backward(grads[i])
	}
}

// Add returns a new tensor holding t + other.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return Apply(addOp{}, t, other)
}

// Mul returns a new tensor holding t * other.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return Apply(mulOp{inputs: [2]float64{t.Data, other.Data}}, t, other)
}

// Function is an operation over scalar values. Forward computes the
// result from the inputs; Backward distributes an incoming gradient to
// one gradient per input, in input order.
type Function interface {
	Forward(inputs ...float64) float64
	Backward(grad float64) []float64
}

// Apply runs the forward pass of fn over the given tensors and returns
// a tensor wired into the graph, so Backward on the result reaches the
// inputs.
func Apply(fn Function, tensors ...*Tensor) *Tensor {
	inputs := make([]float64, len(tensors))
	for i, t := range tensors {
		inputs[i] = t.Data
	}
	return &Tensor{
		Data:       fn.Forward(inputs...),
		creators:   tensors,
		creationOp: fn,
	}
}
