// Package batch reads phrase files for batch translation runs.
package batch
