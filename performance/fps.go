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

package performance

import "time"

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second and that value as a percentage of the rate implied by
// the refresh interval. Accuracy is zero if refresh is zero.
func CalcFPS(numFrames uint64, duration float64, refresh time.Duration) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	if refresh > 0 {
		accuracy = 100 * fps * refresh.Seconds()
	}
	return fps, accuracy
}
