// The application provides a custom Go static analysis tool that combines
// standard analyzers from the Go toolchain, third-party analyzers, and a
// project-specific analyzer into a single `multichecker.Main` invocation.
//
// The staticcheck analyzer list is configured via a config file
// (config.json) next to the binary, which names the staticcheck analyzers
// to enable.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"

	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"honnef.co/go/tools/staticcheck"

	"github.com/patric-chuzhbe/songhub/cmd/staticlint/noosexit"
)

// Config is the name of the JSON configuration file that lists enabled
// staticcheck analyzers.
const Config = `config.json`

// ConfigData describes the structure of the configuration file.
// The Staticcheck field contains the names of enabled staticcheck
// analyzers, e.g., "SA1000", "SA4010".
type ConfigData struct {
	Staticcheck []string
}

func loadConfig() (*ConfigData, error) {
	appfile, err := os.Executable()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(appfile), Config))
	if err != nil {
		return nil, err
	}
	var cfg ConfigData
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	myChecks := []*analysis.Analyzer{
		copylock.Analyzer,     // Checks for copying of locks by value.
		httpresponse.Analyzer, // Checks for mistakes using HTTP responses.
		loopclosure.Analyzer,  // Detects references to loop variables inside closures.
		lostcancel.Analyzer,   // Finds contexts that are not canceled.
		printf.Analyzer,       // Verifies format strings.
		structtag.Analyzer,    // Checks for incorrect struct field tags.
		unmarshal.Analyzer,    // Detects unused fields in JSON unmarshal targets.
		unreachable.Analyzer,  // Detects unreachable code.

		ineffassign.Analyzer, // Detects ineffective assignments.
		nilerr.Analyzer,      // Flags returning nil after an error was created.

		noosexit.Analyzer, // Project-specific: forbids use of os.Exit in main.main.
	}

	enabled := make(map[string]bool, len(cfg.Staticcheck))
	for _, name := range cfg.Staticcheck {
		enabled[name] = true
	}

	for _, v := range staticcheck.Analyzers {
		if enabled[v.Analyzer.Name] {
			myChecks = append(myChecks, v.Analyzer)
		}
	}

	multichecker.Main(myChecks...)
}
