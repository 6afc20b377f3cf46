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

// Package test contains helper functions to remove common boilerplate from
// package tests.
//
// The Expect functions report a failure with t.Errorf() and allow the test to
// continue. The Demand functions stop the test with t.Fatalf(). Use a Demand
// function when the remainder of the test makes no sense if the value is
// wrong, for example when a constructor returns an error.
//
// The ExpectSuccess() and ExpectFailure() functions accept bool and error
// values. A nil value is considered a success, because that is how errors
// indicate success.
//
// CompareWriter implements io.Writer and should be used to capture output
// for later comparison.
package test
