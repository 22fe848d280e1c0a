/*
NAME
  drc2wav - convert DRC recordings to wav or FLAC audio.

DESCRIPTION
  drc2wav converts a single DRC recording, a batch of recordings given as
  arguments, or, with -watch, recordings as they are written to a directory.

  Usage:

	drc2wav [flags] [recording.drc ...]

  Settings are taken, in increasing precedence, from defaults, the YAML file
  given by -config and flags.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// drc2wav converts DRC recordings to audio files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/drc/convert"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// flagKeys maps flag names to the config variables they set.
var flagKeys = map[string]string{
	"in":       convert.KeyInputPath,
	"out":      convert.KeyOutputPath,
	"outdir":   convert.KeyOutputDir,
	"format":   convert.KeyFormat,
	"loc":      convert.KeyLocation,
	"highpass": convert.KeyHighPass,
	"lowpass":  convert.KeyLowPass,
	"taps":     convert.KeyFilterTaps,
	"gain":     convert.KeyGain,
	"rate":     convert.KeyOutputRate,
	"log":      convert.KeyLogging,
	"logpath":  convert.KeyLogPath,
	"watch":    convert.KeyWatchDir,
	"jobs":     convert.KeyJobs,
}

func main() {
	showVersion := flag.Bool("version", false, "show version")
	cfgPath := flag.String("config", "", "path of YAML config file")
	flag.String("in", "", "DRC recording to convert (default ./Data_No_1.drc)")
	flag.String("out", "", "output file, - for stdout (default input name with output extension)")
	flag.String("outdir", "", "directory for batch and watch outputs (default beside input)")
	flag.String("format", "", "output format, wav or flac (default wav)")
	flag.String("loc", "", "time zone of recording timestamps (default Local)")
	flag.String("highpass", "", "high-pass filter cutoff in Hz")
	flag.String("lowpass", "", "low-pass filter cutoff in Hz")
	flag.String("taps", "", "FIR filter length, even (default 256)")
	flag.String("gain", "", "gain applied to samples (default 1)")
	flag.String("rate", "", "output sample rate in Hz, must divide 20000 (default 20000)")
	flag.String("log", "", "log level, one of Debug, Info, Warning, Error, Fatal (default Info)")
	flag.String("logpath", "", "path of log file")
	flag.String("watch", "", "directory to watch for new recordings")
	flag.String("jobs", "", "number of recordings converted at once (default number of CPUs)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Configuration is logged to stderr until the log file is known.
	cfg := &convert.Config{Logger: logging.New(logging.Info, os.Stderr, logSuppress)}
	if *cfgPath != "" {
		err := cfg.Load(*cfgPath)
		if err != nil {
			cfg.Logger.Fatal("could not load config", "error", err.Error())
		}
	}
	vars := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		if k, ok := flagKeys[f.Name]; ok {
			vars[k] = f.Value.String()
		}
	})
	cfg.Update(vars)
	err := cfg.Validate()
	if err != nil {
		cfg.Logger.Fatal("invalid config", "error", err.Error())
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   cfg.LogPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(cfg.LogLevel, io.MultiWriter(os.Stderr, fileLog), logSuppress)
	cfg.Logger = log
	log.Info("starting drc2wav", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.WatchDir != "":
		err = convert.Watch(ctx, cfg, cfg.WatchDir)
		if err != nil {
			log.Fatal("watch failed", "dir", cfg.WatchDir, "error", err.Error())
		}

	case flag.NArg() > 0:
		results, err := convert.Batch(ctx, cfg, flag.Args())
		log.Info("batch finished", "converted", len(results), "recordings", flag.NArg())
		if err != nil {
			log.Fatal("batch failed", "error", err.Error())
		}

	default:
		_, err = convert.Convert(cfg, cfg.InputPath, cfg.OutputPath)
		if err != nil {
			log.Fatal("conversion failed", "input", cfg.InputPath, "error", err.Error())
		}
	}
}
