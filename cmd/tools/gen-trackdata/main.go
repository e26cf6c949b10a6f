// Command gen-trackdata generates a synthetic track geometry dataset
// with injected defects, plus an optional matching video frame index.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
)

func main() {
	output := flag.String("o", "track_data.csv", "output path")
	framesOut := flag.String("frames", "", "also write a frame index CSV to this path")
	rows := flag.Int("n", 2000, "number of readings")
	start := flag.Float64("start", 0, "start chainage in metres")
	interval := flag.Float64("interval", 0.5, "sampling interval in metres")
	defects := flag.Int("defects", 5, "number of defect zones to inject")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"chainage", "gauge", "alignment_left", "alignment_right",
		"cross_level", "twist", "unevenness_left", "unevenness_right",
		"vertical_acceleration", "lateral_acceleration",
		"rail_wear_left", "rail_wear_right", "component_condition",
	}
	if err := w.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	// Defect zones each amplify one measurement over a short span.
	type zone struct {
		lo, hi int
		column int // index into the numeric part of the record
		boost  float64
	}
	boostable := []struct {
		column int
		boost  float64
	}{
		{1, 8},    // gauge: push past the intervention deviation
		{2, 12},   // alignment_left
		{4, 9},    // cross_level
		{5, 6},    // twist
		{8, 0.55}, // vertical_acceleration
	}
	zones := make([]zone, *defects)
	for i := range zones {
		lo := rng.Intn(*rows)
		b := boostable[rng.Intn(len(boostable))]
		zones[i] = zone{lo: lo, hi: lo + 20 + rng.Intn(60), column: b.column, boost: b.boost}
	}

	conditions := []string{"Good", "Good", "Good", "Fair", "Worn fastening", "Ballast fouling"}

	for i := 0; i < *rows; i++ {
		chainage := *start + float64(i)**interval
		values := []float64{
			chainage,
			1435 + rng.NormFloat64()*1.2 + 0.8*math.Sin(chainage/40),
			rng.NormFloat64() * 2.5,
			rng.NormFloat64() * 2.5,
			rng.NormFloat64() * 1.8,
			rng.NormFloat64() * 1.1,
			math.Abs(rng.NormFloat64() * 1.5),
			math.Abs(rng.NormFloat64() * 1.5),
			math.Abs(rng.NormFloat64() * 0.12),
			math.Abs(rng.NormFloat64() * 0.08),
			2 + chainage/5000 + rng.NormFloat64()*0.2,
			2 + chainage/5000 + rng.NormFloat64()*0.2,
		}
		for _, z := range zones {
			if i >= z.lo && i <= z.hi {
				values[z.column] += z.boost
			}
		}

		record := make([]string, 0, len(header))
		for _, v := range values {
			record = append(record, fmt.Sprintf("%.4f", v))
		}
		record = append(record, conditions[rng.Intn(len(conditions))])
		if err := w.Write(record); err != nil {
			log.Fatalf("write row %d: %v", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	log.Printf("✓ Created: %s (%d readings)", *output, *rows)

	if *framesOut == "" {
		return
	}
	ff, err := os.Create(*framesOut)
	if err != nil {
		log.Fatalf("create %s: %v", *framesOut, err)
	}
	defer ff.Close()

	fw := csv.NewWriter(ff)
	if err := fw.Write([]string{"chainage", "timestamp", "frame_reference"}); err != nil {
		log.Fatalf("write frame header: %v", err)
	}
	// One frame every 10 m at a nominal 36 km/h inspection speed.
	const frameSpacing = 10.0
	end := *start + float64(*rows-1)**interval
	frame := 0
	for c := *start; c <= end; c += frameSpacing {
		ts := (c - *start) / 10.0
		rec := []string{
			fmt.Sprintf("%.1f", c),
			fmt.Sprintf("%.2f", ts),
			fmt.Sprintf("frame_%06d.jpg", frame),
		}
		if err := fw.Write(rec); err != nil {
			log.Fatalf("write frame row %d: %v", frame+1, err)
		}
		frame++
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		log.Fatalf("flush frames: %v", err)
	}
	log.Printf("✓ Created: %s (%d frames)", *framesOut, frame)
}
