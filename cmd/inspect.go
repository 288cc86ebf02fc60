/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/kold/ringicon"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [PNG_FILE]",
	Short: "show the chunks of a png file",
	Long:  `show the chunks of a png file and check their CRC-32.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		chunks, err := ringicon.ReadChunks(b)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		_, _ = fmt.Fprintf(out, "File:       %s\n", path)
		_, _ = fmt.Fprintf(out, "File size:  %d bytes\n", len(b))
		if chunks[0].Type == ringicon.ChunkTypeIHDR {
			h, err := ringicon.ParseHeader(chunks[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Dimensions: %d x %d\n", h.Width, h.Height)
			_, _ = fmt.Fprintf(out, "Bit depth:  %d\n", h.BitDepth)
			_, _ = fmt.Fprintf(out, "Color type: %d\n", h.ColorType)
			_, _ = fmt.Fprintf(out, "Interlace:  %d\n", h.InterlaceMethod)
		}
		_, _ = fmt.Fprintf(out, "Chunks:     %d\n", len(chunks))
		for _, c := range chunks {
			_, _ = fmt.Fprintf(out, "  %s %8d bytes  crc %08x %s\n", c.Type, len(c.Data), c.CRC, green("✓"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
