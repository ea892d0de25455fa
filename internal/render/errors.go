// Package render provides the surfaced error values of the core
package render

import "errors"

var (
	// ErrResizeZero reports a framebuffer resize to a zero dimension.
	ErrResizeZero = errors.New("render: framebuffer dimension is zero")

	// ErrSceneTooLarge reports a primitive count above the configured
	// bound.
	ErrSceneTooLarge = errors.New("render: primitive count exceeds configured bound")

	// ErrEmptyScene reports a scene load with no primitives.
	ErrEmptyScene = errors.New("render: scene has no primitives")

	// ErrCameraNaN reports a camera transform carrying NaN.
	ErrCameraNaN = errors.New("render: camera transform is not a number")

	// ErrNoScene reports a draw before any scene was loaded.
	ErrNoScene = errors.New("render: no scene loaded")
)
