package pairjob

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"dualsub/internal/language"
	"dualsub/internal/logging"
	"dualsub/internal/subtitles"
)

// Discover finds <base>_<primary>.<ext> files in inputDir and pairs each with
// its <base>_<secondary>.<ext> partner. Language suffixes match by alias, so
// "kr" also finds "_ko" and "_kor" files. When names are given only those
// bases are returned, and a name with no files at all is reported as missing
// both tracks. Specs are sorted by name and write to outputDir.
func (r *Runner) Discover(inputDir, outputDir string, names ...string) ([]Spec, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Op: "scan", Path: inputDir, Err: err}
	}
	inputFormat, err := subtitles.ParseFormat(r.tracks.InputFormat)
	if err != nil {
		return nil, fmt.Errorf("input format: %w", err)
	}
	ext := inputFormat.Extension()

	type found struct {
		primary   string
		secondary string
	}
	bases := map[string]*found{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		cut := strings.LastIndex(stem, "_")
		if cut <= 0 || cut == len(stem)-1 {
			continue
		}
		base, suffix := stem[:cut], stem[cut+1:]
		path := filepath.Join(inputDir, entry.Name())

		slot := bases[base]
		if slot == nil {
			slot = &found{}
		}
		switch {
		case language.Same(suffix, r.tracks.PrimaryLanguage):
			if slot.primary == "" || suffix == r.tracks.PrimaryLanguage {
				slot.primary = path
			}
		case language.Same(suffix, r.tracks.SecondaryLanguage):
			if slot.secondary == "" || suffix == r.tracks.SecondaryLanguage {
				slot.secondary = path
			}
		default:
			continue
		}
		bases[base] = slot
	}

	wanted := slices.Clone(names)
	if len(wanted) == 0 {
		for base := range bases {
			wanted = append(wanted, base)
		}
	}
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	specs := make([]Spec, 0, len(wanted))
	incomplete := 0
	for _, base := range wanted {
		spec := Spec{Name: base, OutputDir: outputDir}
		slot := bases[base]
		if slot == nil {
			slot = &found{}
		}
		spec.PrimaryPath = slot.primary
		spec.SecondaryPath = slot.secondary
		switch {
		case slot.primary == "" && slot.secondary == "":
			spec.Missing = "both"
		case slot.primary == "":
			spec.Missing = r.tracks.PrimaryLanguage
		case slot.secondary == "":
			spec.Missing = r.tracks.SecondaryLanguage
		}
		if spec.Missing != "" {
			incomplete++
		}
		specs = append(specs, spec)
	}

	attrs := logging.DecisionAttrs("pair_discovery",
		fmt.Sprintf("%d complete", len(specs)-incomplete),
		"matched <base>_<language> file names")
	attrs = append(attrs, logging.String("input_dir", inputDir), logging.Int("incomplete", incomplete))
	r.logger.Debug("pairs discovered", logging.Args(attrs...)...)
	return specs, nil
}
