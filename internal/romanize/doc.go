// Package romanize renders Indic text in ITRANS so learners can read a
// translation aloud before they know the script.
//
// The Brahmic blocks in Unicode share the ISCII layout: a letter sits at
// the same offset from its block start in Devanagari, Bengali, Gurmukhi,
// Gujarati, Oriya, Tamil, Telugu, Kannada and Malayalam. One offset table
// therefore covers all of them, with a handful of script-specific letters
// handled separately.
package romanize
