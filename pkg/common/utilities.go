/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package common

import (
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

func Check(e error) {
	if e != nil {
		log.Fatal(e)
	}
}

func B2Kib(numB uint64) uint64 {
	return numB / 1024
}

func Mib2b(numMb uint64) uint64 {
	return numMb * 1024 * 1024
}

func DurationToSeconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / OneSecondInMicroseconds
}

func DurationToMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1e3
}

// Hostname falls back to "Unknown host" when the kernel does not expose one.
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		log.Info("Failed to get HOSTNAME environmental variable.")
		return "Unknown host"
	}
	return hostname
}

func Arch() string {
	return runtime.GOARCH
}

// MaxResidentKib reports the peak resident set size of this process.
// Linux reports ru_maxrss in KiB, darwin in bytes.
func MaxResidentKib() uint64 {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &usage); err != nil {
		log.Debugf("getrusage failed: %v", err)
		return 0
	}

	maxRss := uint64(usage.Maxrss)
	if runtime.GOOS == "darwin" {
		return B2Kib(maxRss)
	}
	return maxRss
}
