// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/curioloop/linesearch/internal/config"
)

type printer func(format string, a ...any)

// writeReport encodes v as YAML or renders it with text.
func writeReport(w io.Writer, format string, v any, text func(printer)) error {
	if format == config.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}

	var err error
	text(func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	})
	return err
}
