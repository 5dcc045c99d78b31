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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/render"
	"dirpx.dev/denvelope/translate"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var (
		file   string
		status int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Wrap a JSON payload in the envelope",
		Long: `Read a JSON payload from --file, or stdin, and print its envelope.

--status is the HTTP status the payload would be sent with; 0 means
unknown and wraps the payload as a success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open payload: %w", err)
				}
				defer f.Close()
				in = f
			}
			payload, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			r := render.New(render.WithMessages(cfg.Messages))
			out, err := r.Render(payload, &render.Context{Status: status})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (default stdin)")
	cmd.Flags().IntVarP(&status, "status", "s", 0, "HTTP status of the response")
	return cmd
}

func newTranslateCmd(configPath *string) *cobra.Command {
	var (
		rawCode string
		message string
		fields  []string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Show the envelope and status a failure translates to",
		Example: `  denvelope translate --code not_found --message "Order not found"
  denvelope translate --code invalid --field name=required --field email="bad address"
  denvelope translate --code rate_limited --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			c, err := code.Parse(rawCode)
			if err != nil {
				return fmt.Errorf("--code %q: %w", rawCode, err)
			}

			m, err := cfg.Statuses.Mapper()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if explain {
				if _, err := fmt.Fprintln(out, m.Explain(c)); err != nil {
					return err
				}
			}

			fe := fault.E(c, message)
			for _, f := range fields {
				name, msg, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("--field %q: want name=message", f)
				}
				fe = fe.WithField(name, msg)
			}

			tr := translate.New(m, translate.WithMessages(cfg.Messages))
			resp, _ := tr.Translate(fe)
			body, err := render.New(render.WithMessages(cfg.Messages)).Render(resp, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d %s\n", resp.Status, body)
			return err
		},
	}
	cmd.Flags().StringVar(&rawCode, "code", "", "failure code, e.g. not_found (required)")
	cmd.Flags().StringVar(&message, "message", "", "failure detail")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field error as name=message (repeatable)")
	cmd.Flags().BoolVar(&explain, "explain", false, "print which status rule matched")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
