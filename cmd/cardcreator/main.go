package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/youruser/cardcreator/internal/config"
	"github.com/youruser/cardcreator/internal/deck"
	"github.com/youruser/cardcreator/internal/export"
	"github.com/youruser/cardcreator/internal/logging"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] pdf|images cards.csv|cards.xlsx ...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [options] -out sheet.pdf from-images card.png ...\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default $CARDCREATOR_CONFIG)")
	dpi := flag.Int("dpi", 0, "DPI of card images for from-images (default from config)")
	out := flag.String("out", "", "output PDF for from-images")
	manifest := flag.Bool("manifest", false, "print the deck manifest of each PDF")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}
	mode, inputs := flag.Arg(0), flag.Args()[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	r, err := cfg.Renderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating renderer: %v\n", err)
		os.Exit(1)
	}
	e := &export.Exporter{Renderer: r, Page: cfg.PrintPage(), Log: logger}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []export.Result
	switch mode {
	case "pdf", "images":
		for _, in := range inputs {
			var res export.Result
			if mode == "pdf" {
				res, err = e.PDF(ctx, in)
			} else {
				res, err = e.Images(ctx, in)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", in, err)
				os.Exit(1)
			}
			results = append(results, res)
		}
	case "from-images":
		if *out == "" {
			fmt.Fprintln(os.Stderr, "from-images needs -out")
			os.Exit(2)
		}
		if *dpi == 0 {
			*dpi = cfg.Images.DPI
		}
		res, err := e.PDFFromImages(ctx, inputs, *dpi, *out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", *out, err)
			os.Exit(1)
		}
		results = append(results, res)
	default:
		usage()
		os.Exit(2)
	}

	for _, res := range results {
		fmt.Printf("%d cards written to %s\n", res.Successes, res.Output)
		if *manifest && mode != "images" {
			fmt.Println(deck.ExportDeckText(res.Deck))
		}
	}
}
