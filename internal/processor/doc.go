// Package processor runs the translate pipeline shared by the HTTP API, the
// chat relay and the command line: resolve the source language, translate
// through the backend cascade, fix up speaker gender agreement, romanize
// and optionally synthesize speech. It also drives batch runs over phrase
// files.
package processor
