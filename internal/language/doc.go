// Package language maps the language tags found in subtitle file names to
// canonical codes and display names.
//
// Release files often use country codes ("kr", "jp") where a language code
// belongs; the alias table folds those into ISO 639-1 so the primary and
// secondary track suffixes can be compared and labelled consistently.
package language
