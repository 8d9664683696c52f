// Package lang holds the catalog of languages the translator exposes, the
// speaker gender type shared by the grammar and speech layers, and source
// language auto-detection.
package lang
