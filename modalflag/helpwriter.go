// This file is part of fifopacer.
//
// fifopacer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fifopacer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fifopacer.  If not, see <https://www.gnu.org/licenses/>.

package modalflag

import (
	"fmt"
	"io"
)

// helpWriter collects the flag defaults written by the flag package.
type helpWriter struct {
	buffer []byte
}

// Write implements the io.Writer interface.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	hw.buffer = append(hw.buffer, p...)
	return len(p), nil
}

func (hw *helpWriter) help(output io.Writer, path string, subModes []SubMode, additionalHelp string) {
	if output == nil {
		return
	}

	if len(hw.buffer) == 0 && len(subModes) == 0 && additionalHelp == "" {
		if path == "" {
			fmt.Fprintln(output, "No help available")
		} else {
			fmt.Fprintf(output, "No help available for %s\n", path)
		}
		return
	}

	if path == "" {
		fmt.Fprintln(output, "Usage:")
	} else {
		fmt.Fprintf(output, "Usage of %s mode:\n", path)
	}

	output.Write(hw.buffer)

	if len(subModes) > 0 {
		if len(hw.buffer) > 0 {
			fmt.Fprintln(output)
		}

		w := 0
		for _, s := range subModes {
			w = max(w, len(s.Name))
		}

		fmt.Fprintln(output, "  sub-modes:")
		for i, s := range subModes {
			fmt.Fprintf(output, "    %-*s  %s", w, s.Name, s.Help)
			if i == 0 {
				fmt.Fprint(output, " (default)")
			}
			fmt.Fprintln(output)
		}
	}

	if additionalHelp != "" {
		fmt.Fprintln(output)
		fmt.Fprintln(output, additionalHelp)
	}
}
