package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/utils"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	readerName := flag.String("reader", pdf.ReaderPdfcpu, "page reader: pdfcpu or fitz")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(2)
	}

	log := logger.New(logger.WithPrefix("[pdfdims] "), logger.WithFlags(0))

	api.DisableConfigDir()

	reader, err := pdf.NewPageReader(*readerName)
	if err != nil {
		log.Fatal("%v", err)
	}

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	dims, err := reader.PageDims(*pdfPath)
	if err != nil {
		log.Fatal("Error getting page dimensions: %v", err)
	}

	for i, dim := range dims {
		fmt.Printf("\nPage %d:\n", i+1)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)
		fmt.Printf("Dimensions (Width x Height): %d x %d cm\n", utils.PointsToCm(dim.Width), utils.PointsToCm(dim.Height))
	}

	heightCm, widthCm, err := pdf.Geometry(dims)
	if err != nil {
		fmt.Printf("\nClassification: %s\n", pdf.Classify(-1, -1))
		log.Fatal("%v", err)
	}
	fmt.Printf("\nClassification: %s (%d x %d cm)\n", pdf.Classify(heightCm, widthCm), widthCm, heightCm)
}
