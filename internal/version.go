package internal

// Version is the lingobridge release version.
const Version = "0.4.2"
