package main

import (
	"fmt"
	"log"
	"os"

	"DispositionSentinel/internal/config"
	"DispositionSentinel/internal/loader"
	"DispositionSentinel/internal/recorder"
	"DispositionSentinel/internal/reporter"
	"DispositionSentinel/internal/rules"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: checker <stock_data.csv>")
		os.Exit(2)
	}
	inputPath := os.Args[1]

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Load daily records
	records, err := loader.Load(inputPath)
	if err != nil {
		log.Fatalf("[FATAL] load input: %v", err)
	}

	// Evaluate
	report, err := rules.Evaluate(records, cfg.Thresholds())
	if err != nil {
		log.Fatalf("[FATAL] evaluate: %v", err)
	}

	// Report
	if err := reporter.WriteDates(os.Stdout, report.Dispositions); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	log.Printf("[INFO] %s", reporter.FormatSummary(inputPath, len(records), report))

	// Record the run
	if err := rec.RecordRun(&recorder.RunRecord{
		SourceFile:       inputPath,
		RecordCount:      len(records),
		AttentionCount:   len(report.Attention),
		DispositionCount: len(report.Dispositions),
		Dispositions:     report.Dispositions,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
