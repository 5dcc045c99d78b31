/*
   Copyright 2025 The DIRPX Authors

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

// Command denvelope serves the demo API and renders envelopes from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "denvelope",
		Short: "Normalize API responses into one envelope",
		Long: `denvelope wraps API payloads and failures in a single response
envelope: {"success", "message", "data", "errors"?, "meta"?}.

The configuration file is read from --config, or from $DENVELOPE_CONFIG.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML configuration file")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newRenderCmd(&configPath),
		newTranslateCmd(&configPath),
		newVersionCmd(),
	)
	return rootCmd
}
