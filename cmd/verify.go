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

	"github.com/fatih/color"
	"github.com/kold/ringicon"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "check that the icons on disk match a fresh render",
	Long: `check that the icons on disk match a fresh render.

Each icon is checked for chunk integrity, its IHDR and its pixels.
Icons that differ only slightly (perceptual hash distance below 5) are reported as similar.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(cmd)
		if err != nil {
			return err
		}
		reports, err := g.Verify(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		failed := 0
		for _, r := range reports {
			var mark string
			switch r.Status {
			case ringicon.StatusIdentical:
				mark = green("✓ " + string(r.Status))
			case ringicon.StatusSimilar:
				mark = yellow(fmt.Sprintf("~ %s (distance %d)", r.Status, r.Distance))
			case ringicon.StatusStale:
				mark = red(fmt.Sprintf("✗ %s (distance %d)", r.Status, r.Distance))
			default:
				mark = red("✗ " + string(r.Status))
			}
			_, _ = fmt.Fprintf(out, "%s (%dx%d) ... %s\n", r.Icon.Path, r.Icon.Size, r.Icon.Size, mark)
			if r.Err != nil {
				_, _ = fmt.Fprintf(out, "   %v\n", r.Err)
			}
			if !r.Status.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d icons are out of date, run ringicon to regenerate them", failed, len(reports))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
