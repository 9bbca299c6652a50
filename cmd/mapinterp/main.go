package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genetmap"
	_ "github.com/carbocation/genetmap/compileinfoprint"
)

var client *storage.Client

func main() {
	// Consumes a positions table and a genetic map, and writes the table back
	// out with the genetic position of each site interpolated from the map.
	var mapFile, sitesFile, outFile, chromosome, layoutName, delim, sitesDelim string
	var physCol, genetCol, chrCol, posCol, cmCol int
	var noHeader, sitesHeader bool

	flag.StringVar(&mapFile, "map", "", "Path to the genetic map. May be compressed. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&sitesFile, "sites", "", "Path to the positions table to annotate. May be compressed. Optionally, may be a google storage URL (gs://). #-prefixed lines are echoed unchanged")
	flag.StringVar(&outFile, "out", "", "Output file. If not specified, writes to stdout")
	flag.StringVar(&chromosome, "chr", "", "Chromosome whose map to interpolate from. Required when the map has no chromosome column or holds more than one chromosome")
	flag.StringVar(&layoutName, "layout", "HAPMAP", "Named column layout of the map file. One of: "+genetmap.LayoutNames())
	flag.IntVar(&physCol, "physcol", -1, "0-based column of the map's physical position, overriding the layout's column")
	flag.IntVar(&genetCol, "genetcol", -1, "0-based column of the map's genetic position, overriding the layout's column")
	flag.IntVar(&chrCol, "chrcol", -1, "0-based column of the map's chromosome, overriding the layout's column")
	flag.BoolVar(&noHeader, "noheader", false, "Set if the map file's first non-comment line is data rather than a header")
	flag.StringVar(&delim, "delim", "", "Field delimiter of the map file ('tab', 'space', 'comma', or a single character). Autodetected when empty, falling back to the layout's delimiter")
	flag.IntVar(&posCol, "poscol", 1, "0-based column of the physical position in the sites table")
	flag.IntVar(&cmCol, "cmcol", -1, "0-based column of the sites table to fill with the interpolated genetic position. -1 appends a new column")
	flag.BoolVar(&sitesHeader, "sitesheader", true, "Whether the sites table's first non-comment line is a header")
	flag.StringVar(&sitesDelim, "sitesdelim", "tab", "Field delimiter of the sites table ('tab', 'space', 'comma', or a single character)")
	flag.Parse()

	if mapFile == "" || sitesFile == "" {
		flag.PrintDefaults()
		log.Fatalln("Must specify both -map and -sites")
	}

	layout, err := genetmap.NewLayout(layoutName)
	if err != nil {
		log.Fatalln(err)
	}
	if physCol >= 0 {
		layout.ColPosition = physCol
	}
	if genetCol >= 0 {
		layout.ColCM = genetCol
	}
	if chrCol >= 0 {
		layout.ColChromosome = chrCol
	}
	if noHeader {
		layout.HasHeader = false
	}
	if err := layout.Validate(); err != nil {
		log.Fatalln(err)
	}

	sitesDelimRune, err := parseDelimiter(sitesDelim)
	if err != nil {
		log.Fatalln(err)
	}

	// Initialize the Google Storage client, but only if one of the paths
	// indicates that we are pointing to a Google Storage path.
	if strings.HasPrefix(mapFile, "gs://") || strings.HasPrefix(sitesFile, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	// Writer
	var outWriter io.WriteCloser
	if outFile == "" {
		outWriter = os.Stdout
	} else {
		var err error
		outWriter, err = os.Create(outFile)
		if err != nil {
			log.Fatalln(err)
		}
	}
	defer outWriter.Close()

	// Map
	var delimRune rune
	if delim != "" {
		delimRune, err = parseDelimiter(delim)
		if err != nil {
			log.Fatalln(err)
		}
	}

	mapReader, err := genetmap.OpenMapFile(mapFile, client, &layout, delimRune)
	if err != nil {
		log.Fatalln(err)
	}
	defer mapReader.Close()

	m, err := genetmap.Read(mapReader, layout, chromosome)
	if err != nil {
		log.Fatalln(err)
	}

	seq, err := pickSequence(m, chromosome)
	if err != nil {
		log.Fatalln(err)
	}

	// Sites
	sitesReader, err := genetmap.OpenFile(sitesFile, client)
	if err != nil {
		log.Fatalln(err)
	}
	defer sitesReader.Close()

	if err := processSites(sitesReader, outWriter, seq, posCol, cmCol, sitesHeader, sitesDelimRune); err != nil {
		log.Fatalln(err)
	}
}

// pickSequence settles which chromosome's map to interpolate from.
func pickSequence(m *genetmap.Map, chromosome string) (genetmap.Sequence, error) {
	if chromosome != "" {
		return m.Sequences[chromosome], nil
	}
	if len(m.Chromosomes) == 1 {
		return m.Sequences[m.Chromosomes[0]], nil
	}

	return nil, &genetmap.ConfigurationError{Option: "chr", Reason: "the map holds more than one chromosome, so one must be chosen"}
}
