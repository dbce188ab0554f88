/*
Copyright 2021 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boynton/smithyruby/rubyclient"
	"github.com/boynton/smithyruby/smithy"
)

var (
	flagModel   string
	flagService string
	flagOut     string
	flagModule  string
	flagGem     string
	flagConfig  string
	flagVerbose bool
)

func init() {
	generateCmd.Flags().StringVar(&flagModel, "model", "", "path to the Smithy JSON AST model file (required)")
	generateCmd.Flags().StringVar(&flagService, "service", "", "shape id of the service to generate a client for (required)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "output directory for the generated client (required)")
	generateCmd.Flags().StringVar(&flagModule, "module", "", "Ruby module name (default: derived from the service shape name)")
	generateCmd.Flags().StringVar(&flagGem, "gem", "", "gem name (default: snake_case of --module)")
	generateCmd.Flags().StringVar(&flagConfig, "config", "", "optional settings file (JSON or YAML) supplying defaults for the flags above")
	generateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug-level diagnostics")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Ruby client SDK from a Smithy JSON AST model",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := &rubyclient.Settings{}
		if flagConfig != "" {
			loaded, err := rubyclient.LoadSettingsFile(flagConfig)
			if err != nil {
				return &exitError{code: 4, err: fmt.Errorf("reading config %s: %w", flagConfig, err)}
			}
			settings = loaded
		}
		settings.MergeFlagOverrides(flagModel, flagService, flagOut, flagModule, flagGem)

		if settings.ModelPath == "" || settings.ServiceId == "" || settings.OutDir == "" {
			return &exitError{code: 2, err: fmt.Errorf("--model, --service and --out are all required")}
		}

		level := zap.InfoLevel
		if flagVerbose {
			level = zap.DebugLevel
			smithy.Verbose = true
		}
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		logger, err := zapConfig.Build()
		if err != nil {
			return &exitError{code: 4, err: err}
		}
		defer logger.Sync()
		settings.Diag = rubyclient.NewDiagnostics(logger)

		manifest, err := rubyclient.Generate(settings)
		if err != nil {
			return &exitError{code: exitCodeForGenerateErr(err), err: err}
		}

		if err := writeManifest(settings.OutDir, manifest); err != nil {
			return &exitError{code: 4, err: err}
		}

		fmt.Fprintf(os.Stdout, "wrote %d file(s) to %s\n", manifest.Len(), settings.OutDir)
		return nil
	},
}

func exitCodeForGenerateErr(err error) int {
	switch err.(type) {
	case *smithy.ModelIntegrityError, *rubyclient.ValidationError, *rubyclient.LabelBindingError:
		return 2
	case *rubyclient.UnsupportedProtocolError:
		return 3
	case *rubyclient.UnbalancedBlockError, *rubyclient.ManifestConflictError:
		return 4
	default:
		return 2
	}
}

func writeManifest(outDir string, manifest *rubyclient.FileManifest) error {
	for _, path := range manifest.Paths() {
		content, _ := manifest.Get(path)
		fullPath := filepath.Join(outDir, "lib", path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
