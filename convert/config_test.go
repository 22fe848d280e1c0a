/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate,
  Update and Load).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/utils/logging"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:     dl,
		LogLevel:   defaultVerbosity,
		LogPath:    defaultLogPath,
		InputPath:  defaultInputPath,
		OutputPath: "./Data_No_1.wav",
		Format:     defaultFormat,
		Location:   defaultLocation,
		FilterTaps: defaultFilterTaps,
		Gain:       defaultGain,
		OutputRate: defaultOutputRate,
		Jobs:       uint(runtime.NumCPU()),
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateInvalid(t *testing.T) {
	dl := &dumbLogger{}

	got := Config{
		Logger:     dl,
		LogLevel:   42,
		InputPath:  "/data/rec.drc",
		Format:     "mp3",
		Location:   "Not/AZone",
		HighPass:   -1,
		LowPass:    20000,
		FilterTaps: 33,
		Gain:       -2,
		OutputRate: 3000,
		Jobs:       3,
	}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	want := Config{
		Logger:     dl,
		LogLevel:   defaultVerbosity,
		LogPath:    defaultLogPath,
		InputPath:  "/data/rec.drc",
		OutputPath: "/data/rec.wav",
		Format:     defaultFormat,
		Location:   defaultLocation,
		FilterTaps: defaultFilterTaps,
		Gain:       defaultGain,
		OutputRate: defaultOutputRate,
		Jobs:       3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"FilterTaps": "128",
		"Format":     "FLAC",
		"Gain":       "2.5",
		"HighPass":   "40",
		"InputPath":  "/inputpath",
		"Jobs":       "4",
		"Location":   "Australia/Adelaide",
		"logging":    "Debug",
		"LogPath":    "/logpath",
		"LowPass":    "8000",
		"OutputDir":  "/outputdir",
		"OutputPath": "/outputpath",
		"OutputRate": "10000",
		"WatchDir":   "/watchdir",
	}

	dl := &dumbLogger{}
	want := Config{
		Logger:     dl,
		LogLevel:   logging.Debug,
		LogPath:    "/logpath",
		InputPath:  "/inputpath",
		OutputPath: "/outputpath",
		OutputDir:  "/outputdir",
		Format:     FormatFLAC,
		Location:   "Australia/Adelaide",
		HighPass:   40,
		LowPass:    8000,
		FilterTaps: 128,
		Gain:       2.5,
		OutputRate: 10000,
		WatchDir:   "/watchdir",
		Jobs:       4,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	const file = `
InputPath: /recordings/Data_No_7.drc
Format: flac
Gain: 1.5
LowPass: 4000
FilterTaps: 64
OutputRate: 10000
logging: Warning
`
	path := filepath.Join(t.TempDir(), "drc.yaml")
	err := os.WriteFile(path, []byte(file), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	dl := &dumbLogger{}
	got := Config{Logger: dl}
	err = got.Load(path)
	if err != nil {
		t.Fatalf("could not load config: %v", err)
	}

	want := Config{
		Logger:     dl,
		LogLevel:   logging.Warning,
		InputPath:  "/recordings/Data_No_7.drc",
		Format:     FormatFLAC,
		Gain:       1.5,
		LowPass:    4000,
		FilterTaps: 64,
		OutputRate: 10000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(bad, []byte("- not\n- a mapping\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	c := Config{Logger: &dumbLogger{}}
	for _, p := range []string{filepath.Join(dir, "missing.yaml"), bad} {
		if err := c.Load(p); err == nil {
			t.Errorf("expected error loading %s", p)
		}
	}
}

func TestOutputFor(t *testing.T) {
	tests := []struct {
		cfg  Config
		in   string
		want string
	}{
		{cfg: Config{Format: FormatWAV}, in: "/data/a.drc", want: "/data/a.wav"},
		{cfg: Config{Format: FormatFLAC}, in: "/data/a.DRC", want: "/data/a.flac"},
		{cfg: Config{Format: FormatWAV, OutputDir: "/out"}, in: "/data/b.drc", want: "/out/b.wav"},
	}
	for _, test := range tests {
		if got := test.cfg.outputFor(test.in); got != test.want {
			t.Errorf("outputFor(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
