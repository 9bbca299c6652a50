package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/genetmap"
	_ "github.com/carbocation/genetmap/compileinfoprint"
)

var client *storage.Client

func main() {
	var mapFile, outPrefix, chromosome, layoutName, delim string
	var tolerance float64
	var physCol, genetCol, genet2Col, chrCol, workers int
	var noHeader, sexSpecific, printHist bool

	flag.Float64Var(&tolerance, "error", 0.01, "Maximum absolute interpolation error, in centimorgans, permitted at any removed record")
	flag.StringVar(&mapFile, "mapfile", "", "Path to the genetic map to thin. May be gzip/zip/xz/zlib/bzip2 compressed. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&chromosome, "chr", "", "Chromosome to process. Required when the layout has no chromosome column; otherwise restricts the run to that chromosome and may be left empty to process all of them")
	flag.StringVar(&outPrefix, "out", "min_viable_map", "Output path prefix. Each processed chromosome is written to <prefix><chromosome>.txt")
	flag.StringVar(&layoutName, "layout", "HAPMAP", "Named column layout of the map file. One of: "+genetmap.LayoutNames())
	flag.IntVar(&physCol, "physcol", -1, "0-based column of the physical position, overriding the layout's column")
	flag.IntVar(&genetCol, "genetcol", -1, "0-based column of the genetic position in cM, overriding the layout's column")
	flag.IntVar(&genet2Col, "genet2col", -1, "0-based column of the second sex's genetic position in cM. Required with -sexspecific unless the layout already names one")
	flag.IntVar(&chrCol, "chrcol", -1, "0-based column of the chromosome, overriding the layout's column")
	flag.BoolVar(&noHeader, "noheader", false, "Set if the map file's first non-comment line is data rather than a header")
	flag.BoolVar(&sexSpecific, "sexspecific", false, "Set if the map carries two sex-specific genetic positions per site; both must then stay within -error over one shared set of retained sites")
	flag.StringVar(&delim, "delim", "", "Field delimiter of the map file ('tab', 'space', 'comma', or a single character). Autodetected when empty, falling back to the layout's delimiter")
	flag.BoolVar(&printHist, "hist", false, "Print a histogram of the interpolation residuals of each chromosome's removed records")
	flag.IntVar(&workers, "workers", 0, "Number of chromosomes to thin concurrently. 0 uses the number of CPUs")
	flag.Parse()

	if mapFile == "" {
		flag.PrintDefaults()
		log.Fatalln("Must specify a -mapfile")
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

	if sexSpecific {
		if genet2Col >= 0 {
			layout.ColCM2 = genet2Col
		}
		if layout.ColCM2 < 0 {
			flag.PrintDefaults()
			log.Fatalln("Must specify -genet2col with -sexspecific")
		}
		if layout.ColCM2 <= layout.ColCM {
			log.Fatalln("-genet2col must name a column to the right of -genetcol")
		}
	} else {
		// Without -sexspecific, a second genetic column in the layout is
		// ignored and the map is treated as sex-averaged.
		layout.ColCM2 = -1
	}

	if err := layout.Validate(); err != nil {
		log.Fatalln(err)
	}

	if layout.ColChromosome < 0 && chromosome == "" {
		flag.PrintDefaults()
		log.Fatalln("Must specify -chr when the layout has no chromosome column")
	}

	// Initialize the Google Storage client, but only if the map path
	// indicates that we are pointing to a Google Storage path.
	if strings.HasPrefix(mapFile, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	var delimRune rune
	if delim != "" {
		delimRune, err = parseDelimiter(delim)
		if err != nil {
			log.Fatalln(err)
		}
	}

	rdr, err := genetmap.OpenMapFile(mapFile, client, &layout, delimRune)
	if err != nil {
		log.Fatalln(err)
	}
	defer rdr.Close()

	m, err := genetmap.Read(rdr, layout, chromosome)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d records across %d chromosome(s) from %s\n", m.Len(), len(m.Chromosomes), mapFile)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log.Println("Limiting concurrent chromosomes to", workers)

	results := make([]chromResult, len(m.Chromosomes))

	concurrencyLimit := make(chan struct{}, workers)
	pool := sync.WaitGroup{}

	for i, chrom := range m.Chromosomes {
		i, chrom := i, chrom

		pool.Add(1)
		go func() {
			defer pool.Done()

			concurrencyLimit <- struct{}{}
			defer func() { <-concurrencyLimit }()

			results[i] = thinChromosome(chrom, m.Sequences[chrom], layout, tolerance, outPrefix)
		}()
	}
	pool.Wait()

	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			log.Println(r.err)
			continue
		}

		log.Printf("%s: %s; wrote %s\n", r.chromosome, r.result, r.outPath)

		if printHist && len(r.result.Residuals) > 0 {
			hist := histogram.Hist(25, r.result.Residuals)
			if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(5)); err != nil {
				log.Println(err)
			}
		}
	}

	if failures > 0 {
		log.Fatalf("Failed to thin %d of %d chromosome(s)\n", failures, len(m.Chromosomes))
	}
	log.Println("Completed")
}
