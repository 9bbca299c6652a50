package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/genetmap"
	_ "github.com/carbocation/genetmap/compileinfoprint"
)

var client *storage.Client

func main() {
	// Verifies that a thinned map reproduces its dense original: every
	// original record must reconstruct within the tolerance, the thinned
	// records must be an ordered subset of the original, and both endpoints
	// must survive.
	var originalFile, thinnedPrefix, reportFile, chromosome, layoutName, delim string
	var tolerance float64
	var physCol, genetCol, genet2Col, chrCol int
	var noHeader, sexSpecific, printHist bool

	flag.StringVar(&originalFile, "original", "", "Path to the dense map that was thinned. May be compressed. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&thinnedPrefix, "thinned", "min_viable_map", "Path prefix of the thinned outputs, as given to mapthin -out. Each chromosome is read from <prefix><chromosome>.txt")
	flag.Float64Var(&tolerance, "error", 0.01, "Tolerance, in centimorgans, that the thinned map is expected to honor")
	flag.StringVar(&chromosome, "chr", "", "Chromosome to check. Required when the layout has no chromosome column; otherwise restricts the check to that chromosome")
	flag.StringVar(&layoutName, "layout", "HAPMAP", "Named column layout of both map files. One of: "+genetmap.LayoutNames())
	flag.IntVar(&physCol, "physcol", -1, "0-based column of the physical position, overriding the layout's column")
	flag.IntVar(&genetCol, "genetcol", -1, "0-based column of the genetic position in cM, overriding the layout's column")
	flag.IntVar(&genet2Col, "genet2col", -1, "0-based column of the second sex's genetic position in cM. Required with -sexspecific unless the layout already names one")
	flag.IntVar(&chrCol, "chrcol", -1, "0-based column of the chromosome, overriding the layout's column")
	flag.BoolVar(&noHeader, "noheader", false, "Set if the map files' first non-comment lines are data rather than headers")
	flag.BoolVar(&sexSpecific, "sexspecific", false, "Set if the maps carry two sex-specific genetic positions per site")
	flag.StringVar(&delim, "delim", "", "Field delimiter of the map files ('tab', 'space', 'comma', or a single character). Autodetected per file when empty")
	flag.BoolVar(&printHist, "hist", false, "Print a histogram of each chromosome's reconstruction residuals")
	flag.StringVar(&reportFile, "report", "", "If set, write a per-chromosome TSV report to this path")
	flag.Parse()

	if originalFile == "" {
		flag.PrintDefaults()
		log.Fatalln("Must specify an -original map")
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
	} else {
		layout.ColCM2 = -1
	}
	if err := layout.Validate(); err != nil {
		log.Fatalln(err)
	}
	if layout.ColChromosome < 0 && chromosome == "" {
		flag.PrintDefaults()
		log.Fatalln("Must specify -chr when the layout has no chromosome column")
	}

	var delimRune rune
	if delim != "" {
		delimRune, err = parseDelimiter(delim)
		if err != nil {
			log.Fatalln(err)
		}
	}

	// Initialize the Google Storage client, but only if one of the paths
	// indicates that we are pointing to a Google Storage path.
	if strings.HasPrefix(originalFile, "gs://") || strings.HasPrefix(thinnedPrefix, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	origLayout := layout
	rdr, err := genetmap.OpenMapFile(originalFile, client, &origLayout, delimRune)
	if err != nil {
		log.Fatalln(err)
	}
	defer rdr.Close()

	m, err := genetmap.Read(rdr, origLayout, chromosome)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d records across %d chromosome(s) from %s\n", m.Len(), len(m.Chromosomes), originalFile)

	summaries := make([]chromSummary, 0, len(m.Chromosomes))
	failed := false
	for _, chrom := range m.Chromosomes {
		s, err := checkChromosome(chrom, m.Sequences[chrom], thinnedPrefix+chrom+".txt", layout, delimRune, tolerance)
		if err != nil {
			log.Println(err)
			failed = true
			continue
		}
		summaries = append(summaries, s)

		log.Printf("%s: %d -> %d records; %d violation(s); residual cM max %.3g mean %.3g median %.3g\n",
			chrom, s.Original, s.Thinned, s.Violations, s.MaxResidual, s.MeanResidual, s.MedianResidual)
		if !s.Subset {
			log.Printf("%s: the thinned records are not an ordered subset of the original\n", chrom)
		}
		if !s.EndpointsKept {
			log.Printf("%s: the original endpoints are missing from the thinned map\n", chrom)
		}
		if s.Violations > 0 || !s.Subset || !s.EndpointsKept {
			failed = true
		}

		if printHist && len(s.residuals) > 0 {
			hist := histogram.Hist(25, s.residuals)
			if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(5)); err != nil {
				log.Println(err)
			}
		}
	}

	if reportFile != "" {
		if err := writeReport(reportFile, summaries); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote report to", reportFile)
	}

	if failed {
		log.Fatalf("The thinned map does not reproduce the original within %v cM\n", tolerance)
	}
	log.Println("Completed")
}
