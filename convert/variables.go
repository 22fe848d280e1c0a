/*
NAME
  variables.go

DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/ausocean/drc/codec/drc"
	"github.com/ausocean/drc/codec/pcm"
	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyFilterTaps = "FilterTaps"
	KeyFormat     = "Format"
	KeyGain       = "Gain"
	KeyHighPass   = "HighPass"
	KeyInputPath  = "InputPath"
	KeyJobs       = "Jobs"
	KeyLocation   = "Location"
	KeyLogging    = "logging"
	KeyLogPath    = "LogPath"
	KeyLowPass    = "LowPass"
	KeyOutputDir  = "OutputDir"
	KeyOutputPath = "OutputPath"
	KeyOutputRate = "OutputRate"
	KeyWatchDir   = "WatchDir"
)

// Config map parameter types.
const (
	typeString = "string"
	typeUint   = "uint"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultInputPath  = "./Data_No_1.drc"
	defaultFormat     = FormatWAV
	defaultLocation   = "Local"
	defaultVerbosity  = logging.Info
	defaultLogPath    = "/var/log/drc/drc.log"
	defaultFilterTaps = 256
	defaultGain       = 1.0
	defaultOutputRate = drc.SampleRate
)

// Variables describes the variables that can be used for conversion control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
// Variables are validated in order, so a variable may depend on those before it.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyFilterTaps,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FilterTaps = parseUint(KeyFilterTaps, v, c) },
		Validate: func(c *Config) {
			if c.FilterTaps == 0 || c.FilterTaps%2 != 0 {
				c.LogInvalidField(KeyFilterTaps, defaultFilterTaps)
				c.FilterTaps = defaultFilterTaps
			}
		},
	},
	{
		Name:   KeyFormat,
		Type:   "enum:wav,flac",
		Update: func(c *Config, v string) { c.Format = strings.ToLower(v) },
		Validate: func(c *Config) {
			switch c.Format {
			case FormatWAV, FormatFLAC:
			default:
				c.LogInvalidField(KeyFormat, defaultFormat)
				c.Format = defaultFormat
			}
		},
	},
	{
		Name:   KeyGain,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.Gain = parseFloat(KeyGain, v, c) },
		Validate: func(c *Config) {
			if c.Gain <= 0 {
				c.LogInvalidField(KeyGain, defaultGain)
				c.Gain = defaultGain
			}
		},
	},
	{
		Name:     KeyHighPass,
		Type:     typeFloat,
		Update:   func(c *Config, v string) { c.HighPass = parseFloat(KeyHighPass, v, c) },
		Validate: func(c *Config) { c.HighPass = cutoff(KeyHighPass, c.HighPass, c) },
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
		Validate: func(c *Config) {
			if c.InputPath == "" {
				c.LogInvalidField(KeyInputPath, defaultInputPath)
				c.InputPath = defaultInputPath
			}
		},
	},
	{
		Name:   KeyJobs,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Jobs = parseUint(KeyJobs, v, c) },
		Validate: func(c *Config) {
			if c.Jobs == 0 {
				n := uint(runtime.NumCPU())
				c.LogInvalidField(KeyJobs, n)
				c.Jobs = n
			}
		},
	},
	{
		Name:   KeyLocation,
		Type:   typeString,
		Update: func(c *Config, v string) { c.Location = v },
		Validate: func(c *Config) {
			if c.Location == "" {
				c.LogInvalidField(KeyLocation, defaultLocation)
				c.Location = defaultLocation
				return
			}
			_, err := time.LoadLocation(c.Location)
			if err != nil {
				c.Logger.Warning("unknown time zone", "location", c.Location, "error", err.Error())
				c.LogInvalidField(KeyLocation, defaultLocation)
				c.Location = defaultLocation
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyLogPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.LogPath = v },
		Validate: func(c *Config) {
			if c.LogPath == "" {
				c.LogInvalidField(KeyLogPath, defaultLogPath)
				c.LogPath = defaultLogPath
			}
		},
	},
	{
		Name:     KeyLowPass,
		Type:     typeFloat,
		Update:   func(c *Config, v string) { c.LowPass = parseFloat(KeyLowPass, v, c) },
		Validate: func(c *Config) { c.LowPass = cutoff(KeyLowPass, c.LowPass, c) },
	},
	{
		Name:   KeyOutputDir,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputDir = v },
	},
	{
		Name:   KeyOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputPath = v },
		Validate: func(c *Config) {
			if c.OutputPath == "" {
				p := strings.TrimSuffix(c.InputPath, filepath.Ext(c.InputPath)) + c.ext()
				c.LogInvalidField(KeyOutputPath, p)
				c.OutputPath = p
			}
		},
	},
	{
		Name:   KeyOutputRate,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.OutputRate = parseUint(KeyOutputRate, v, c) },
		Validate: func(c *Config) {
			_, err := pcm.NewDecimator(drc.SampleRate, c.OutputRate)
			if err != nil {
				c.LogInvalidField(KeyOutputRate, defaultOutputRate)
				c.OutputRate = defaultOutputRate
			}
		},
	},
	{
		Name:   KeyWatchDir,
		Type:   typeString,
		Update: func(c *Config, v string) { c.WatchDir = v },
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

// cutoff checks that a filter cutoff lies below the Nyquist frequency of DRC
// audio, returning 0, i.e. no filter, if not.
func cutoff(n string, v float64, c *Config) float64 {
	if v < 0 || v >= drc.SampleRate/2 {
		c.LogInvalidField(n, 0)
		return 0
	}
	return v
}
