// Package types defines the Entry value, the placeholder Resolver, the
// Database interface, and the error taxonomy shared by every where-is
// backend and frontend.
//
// An Entry names one piece of configuration (for example "zsh") and lists
// the raw, portable location specs where it may live. Raw specs are path
// segments that may contain the placeholders HOME, WHEREIS_CONFIG and
// CONFIG_FOLDER; they are expanded into absolute paths only when read, never
// when stored.
package types
