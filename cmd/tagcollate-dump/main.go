// tagcollate-dump — CLI entry point
//
// Usage:
//   tagcollate-dump [--strategy best|first|ignore] <file>
//
// Reads every tag block tagcollate can recognize from <file> (FLAC,
// ID3v1, ID3v2, MP4, APE, picked by extension) and prints the
// collated artist/album/title.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankit-chaubey/tagcollate"
	"github.com/ankit-chaubey/tagcollate/apetag"
	"github.com/ankit-chaubey/tagcollate/flac"
	"github.com/ankit-chaubey/tagcollate/id3v1"
	"github.com/ankit-chaubey/tagcollate/id3v2tag"
	"github.com/ankit-chaubey/tagcollate/mp4tag"
)

func main() {
	fs := flag.NewFlagSet("tagcollate-dump", flag.ExitOnError)
	strategy := fs.String("strategy", "best", "duplicate-tag strategy: best, first or ignore")
	fs.Usage = func() {
		fmt.Println("Usage: tagcollate-dump [--strategy best|first|ignore] <file>")
		fmt.Println()
		fmt.Println("Flags:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	all, err := collectTags(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tagcollate-dump: %s\n", err)
		os.Exit(1)
	}
	if all.CountDistinct() == 0 {
		fmt.Fprintf(os.Stderr, "tagcollate-dump: no recognized tag blocks in %s\n", path)
		os.Exit(1)
	}

	strat, err := parseStrategy(*strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tagcollate-dump: %s\n", err)
		os.Exit(1)
	}

	c := tagcollate.NewCollator(all, tagcollate.DefaultPrioritization(), strat)
	printField := func(name string, value string, ok bool) {
		if ok {
			fmt.Printf("%s: %s\n", name, value)
		} else {
			fmt.Printf("%s: (none)\n", name)
		}
	}
	artist, artistOK := c.Artist()
	album, albumOK := c.Album()
	title, titleOK := c.Title()
	printField("artist", artist, artistOK)
	printField("album", album, albumOK)
	printField("title", title, titleOK)
}

func parseStrategy(s string) (tagcollate.DuplicateTagStrategy, error) {
	switch s {
	case "best":
		return tagcollate.PrioritizeBest, nil
	case "first":
		return tagcollate.PrioritizeFirst, nil
	case "ignore":
		return tagcollate.IgnoreDuplicates, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want best, first or ignore)", s)
	}
}

// collectTags opens path once per peer parser it is plausible for,
// based on its extension, and gathers whatever tag blocks are found
// into a tagcollate.AllMetadata. A peer parser finding no tag of its
// kind (ErrNoTag, or an ID3v2/MP4/APE miss) is not an error for the
// purposes of this command: files legitimately carry only a subset of
// these formats.
func collectTags(path string) (*tagcollate.AllMetadata, error) {
	all := &tagcollate.AllMetadata{}
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".flac" {
		if tag, err := readFLAC(path); err == nil {
			all.Tags = append(all.Tags, *tag)
		}
	}

	if m, err := readID3v1(path); err == nil {
		all.Tags = append(all.Tags, tagcollate.TypedMetadata{Variant: tagcollate.VariantID3v1, Map: m})
	}

	if tag, err := id3v2tag.Extract(path); err == nil && tag != nil {
		all.Tags = append(all.Tags, *tag)
	}

	if ext == ".m4a" || ext == ".mp4" || ext == ".m4b" {
		if tag, err := mp4tag.Extract(path); err == nil {
			all.Tags = append(all.Tags, *tag)
		}
	}

	if m, err := readAPE(path); err == nil {
		all.Tags = append(all.Tags, tagcollate.TypedMetadata{Variant: tagcollate.VariantAPE, Map: m})
	}

	return all, nil
}

func readFLAC(path string) (*tagcollate.TypedMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	meta, err := flac.Read(f)
	if err != nil {
		return nil, err
	}
	return &tagcollate.TypedMetadata{Variant: tagcollate.VariantFLAC, Map: meta.Map}, nil
}

func readAPE(path string) (*tagcollate.MetadataMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return apetag.Read(f)
}

func readID3v1(path string) (*tagcollate.MetadataMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return id3v1.Read(f)
}
