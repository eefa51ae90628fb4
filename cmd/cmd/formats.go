// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/h2non/filetype"
	"github.com/ostafen/reext/internal/config"
	"github.com/ostafen/reext/internal/format"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List all supported file formats",
		Long: `The 'formats' command displays a table of all file formats currently recognised, in the order they are checked.
Each format includes its extension, a short description and the magic byte signatures used for detection.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}

	cmd.Flags().StringSlice(config.KeyExt, nil, "only list these extensions")
	cmd.Flags().Bool(config.KeyExtended, false, "also list the formats recognised by extended detection")
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	exts, _ := cmd.Flags().GetStringSlice(config.KeyExt)
	extended, _ := cmd.Flags().GetBool(config.KeyExtended)

	headers, err := format.FileHeaders(exts...)
	if err != nil {
		return err
	}
	return writeFormats(os.Stdout, headers, extended)
}

func writeFormats(out io.Writer, headers []format.FileHeader, extended bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESC\tSIGNATURES")

	known := make(map[string]bool, len(headers))
	for _, hdr := range headers {
		known[hdr.Ext] = true

		signatures := make([]string, len(hdr.Signatures))
		for i, sig := range hdr.Signatures {
			signatures[i] = hex.EncodeToString(sig)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n",
			hdr.Ext,
			hdr.Description,
			strings.Join(signatures, ","),
		)
	}

	if extended {
		var names []string
		for name, typ := range filetype.Types {
			if typ.Extension != "" && !known[typ.Extension] {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			typ := filetype.Types[name]
			fmt.Fprintf(w, "%s\t%s (extended)\t-\n", typ.Extension, typ.MIME.Value)
		}
	}
	return w.Flush()
}
