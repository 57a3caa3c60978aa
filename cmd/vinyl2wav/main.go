package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"vinyl2wav/pkg/config"
	"vinyl2wav/pkg/raster"
	"vinyl2wav/pkg/visualization"
	"vinyl2wav/pkg/vinyl"
	"vinyl2wav/pkg/wav"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "Scanned disc image (JPEG, PNG, BMP or TIFF)")
	outputName := flag.String("output", "output.wav", "Output WAV filename")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	rpm := flag.Float64("rpm", 0, "Disc rotation rate in revolutions per minute (default: from config)")
	sampleRate := flag.Int("rate", 0, "Output sample rate in Hz (default: from config)")
	track := flag.Bool("track", false, "Record visited pixels and save a debug overlay image")
	overlayName := flag.String("overlay", "", "Overlay image filename (default: from config)")
	flag.Parse()

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration and apply command line overrides
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *rpm > 0 {
		cfg.Audio.RPM = *rpm
	}
	if *sampleRate > 0 {
		cfg.Audio.SampleRate = *sampleRate
	}
	if *track {
		cfg.Output.SaveOverlay = true
	}
	if *overlayName != "" {
		cfg.Output.OverlayFile = *overlayName
	}

	fmt.Println("================================")
	fmt.Println("VINYL2WAV - AUDIO EXTRACTION FROM SCANNED PHONOGRAPHIC DISCS")
	fmt.Println("================================")

	// Load the scanned image into a lightness raster
	fmt.Printf("Loading disc image: %s\n", *inputFile)
	source, err := raster.Load(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load disc image: %v", err)
	}
	fmt.Printf("Loaded raster with dimensions %dx%d\n", source.Width(), source.Height())

	// Estimate the groove geometry
	fmt.Println("Estimating groove geometry...")
	disc := vinyl.New(source, cfg.Audio.RPM)

	if cfg.Output.Verbose {
		fmt.Printf("\nEstimated disc profile:\n")
		fmt.Printf("=======================\n")
		fmt.Printf("Center: (%d, %d)\n", disc.Center().X, disc.Center().Y)
		fmt.Printf("Average track width: %.2f px\n", disc.TrackWidth())
		fmt.Printf("Average gap width: %.2f px\n", disc.GapWidth())
		fmt.Printf("Spin count: %d\n", disc.Spins())
		fmt.Printf("Estimated duration at %.0f rpm: %s\n\n", cfg.Audio.RPM, disc.Duration())
	}

	// Walk the spiral and sample the groove
	fmt.Println("Extracting audio samples...")
	samples, err := disc.ExtractAudio(vinyl.Options{Track: cfg.Output.SaveOverlay})
	if err != nil {
		log.Fatalf("Audio extraction failed: %v", err)
	}
	fmt.Printf("Extracted %d samples\n", len(samples))

	// Write the playable container
	format := wav.DefaultFormat()
	format.SampleRate = uint32(cfg.Audio.SampleRate)
	if err := wav.WriteFile(*outputName, format, samples); err != nil {
		log.Fatalf("Failed to write WAV file: %v", err)
	}
	fmt.Printf("Output audio saved to: %s\n", *outputName)

	// Save the debug overlay if tracking was requested
	if cfg.Output.SaveOverlay {
		overlay, err := disc.Overlay()
		if err != nil {
			log.Fatalf("Failed to retrieve overlay: %v", err)
		}
		if err := visualization.SaveImage(overlay, cfg.Output.OverlayFile); err != nil {
			log.Fatalf("Failed to save overlay image: %v", err)
		}
		fmt.Printf("Debug overlay saved to: %s\n", cfg.Output.OverlayFile)
	}
}
