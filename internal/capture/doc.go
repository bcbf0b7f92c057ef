// Package capture grabs raw screen images and owns the filename scheme that
// ties an image file to its ledger record.
package capture
