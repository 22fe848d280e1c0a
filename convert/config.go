/*
NAME
  config.go

DESCRIPTION
  config.go contains the configuration settings for DRC conversion.

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
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ausocean/utils/logging"
)

// Output formats.
const (
	FormatWAV  = "wav"
	FormatFLAC = "flac"
)

// Config provides parameters relevant to the conversion of DRC recordings. A
// new config must be validated using the Validate method before use.
type Config struct {
	// Logger holds an implementation of the Logger interface as defined in
	// github.com/ausocean/utils/logging. This must be set for conversion to
	// work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	// LogPath is the path of the rotated log file written by the commands.
	LogPath string

	InputPath  string // InputPath is the DRC recording converted in single file mode.
	OutputPath string // OutputPath is the destination of single file mode, "-" for stdout.
	OutputDir  string // OutputDir holds batch and watch outputs; beside the input if empty.

	// Format is the output container, FormatWAV or FormatFLAC.
	Format string

	// Location is the IANA name of the time zone the recorder wrote
	// timestamps in. "Local" uses the host time zone.
	Location string

	HighPass   float64 // HighPass is the high-pass cutoff in Hz, 0 for none.
	LowPass    float64 // LowPass is the low-pass cutoff in Hz, 0 for none.
	FilterTaps uint    // FilterTaps is the FIR filter length, must be even.
	Gain       float64 // Gain is the amplification applied to samples.

	// OutputRate is the sample rate of the output. It must divide the DRC
	// sample rate evenly.
	OutputRate uint

	WatchDir string // WatchDir is the directory watched for new recordings.
	Jobs     uint   // Jobs is the number of files converted concurrently.
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// Load updates c from the YAML file at path. The file holds a flat mapping of
// the variable names in Variables to their values.
func (c *Config) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	var m map[string]interface{}
	err = yaml.Unmarshal(b, &m)
	if err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[k] = fmt.Sprint(v)
	}
	c.Update(vars)
	return nil
}

// location returns the time zone named by c.Location.
func (c *Config) location() (*time.Location, error) {
	return time.LoadLocation(c.Location)
}

// ext returns the file extension of the output format.
func (c *Config) ext() string {
	if c.Format == FormatFLAC {
		return ".flac"
	}
	return ".wav"
}

// outputFor returns the output path for the recording at in when converting
// more than one file.
func (c *Config) outputFor(in string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(in)
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, base+c.ext())
}
