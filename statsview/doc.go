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

// Package statsview is an optional package that is built only when the
// statsview build tag is present:
//
//	go build -tags statsview .
//
// It provides a HTTP server running locally offering runtime statistics for
// the harness process. This is useful for watching allocation and goroutine
// behaviour while the frame loop is running. Underlying functionality is
// provided by "github.com/go-echarts/statsview".
//
// After launch, graphical statistics will be viewable at:
//
//	localhost:16060/debug/statsview
//
// And standard Go pprof statistics available at:
//
//	localhost:16060/debug/pprof/
//
// Without the build tag, Available() returns false and Launch() only logs
// that the server is missing.
package statsview
