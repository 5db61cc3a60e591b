// Package decomplog is the decomposition driver's logging shim: a thin
// wrapper over logrus giving the recursive decompose/split/merge loop a
// single place to report progress without every package importing
// logrus directly.
//
// Grounded on Consensys/go-corset's `log "github.com/sirupsen/logrus"`
// alias idiom (pkg/cmd/debug.go and siblings) and its `log.SetLevel`
// verbosity wiring.
package decomplog

import (
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// SetVerbose raises the log level to Debug (verbose) or back to the
// quiet-by-default Warn level, mirroring go-corset's --verbose flag.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}

// Step logs one decomposition-driver step (spec.md §4.8): entering a
// base case, a separation split, or a leaf classification.
func Step(msg string, fields map[string]interface{}) {
	log.WithFields(fields).Debug(msg)
}

// Split logs a 1-/2-/3-sum split, naming the separation kind and both
// sides' sizes.
func Split(kind string, h1, w1, h2, w2 int) {
	log.WithFields(log.Fields{
		"kind": kind, "side1_rows": h1, "side1_cols": w1, "side2_rows": h2, "side2_cols": w2,
	}).Info("separation split")
}

// Leaf logs a base-case or terminal classification of a decomposition
// node: graphic, cographic, R10, or irregular.
func Leaf(classification string, rows, cols int) {
	log.WithFields(log.Fields{"class": classification, "rows": rows, "cols": cols}).Info("leaf classified")
}

// Irregular logs the discovery of an irregular leaf that makes the whole
// matroid non-regular.
func Irregular(rows, cols int) {
	log.WithFields(log.Fields{"rows": rows, "cols": cols}).Warn("irregular leaf found, matrix is not TU")
}
