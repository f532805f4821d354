// Package subtitles reads, cleans, corrects, and writes timed-text tracks.
//
// Extraction accepts WebVTT and SRT, drops headers, credit lines, release
// advertisements and bracketed sound cues, and hands the synchronizer plain
// cues in seconds. The writers emit synchronized pairs back out as numbered
// WebVTT or SRT blocks, one file per language or a combined dual-language
// track. Typo correction runs only at write time so it never influences how
// cues are grouped.
package subtitles
