// Package obscure renders captured screens unreadable while keeping them
// classifiable. The pipeline is a pure function over an image; it holds no
// state and produces identical output for identical input.
package obscure
