// Package grammar rewrites machine-translated text so that verb forms agree
// with the speaker's gender in gendered Indic languages. Translation engines
// default to one gender; the rewrite swaps the inflected forms from a fixed
// table of literal word pairs.
package grammar
