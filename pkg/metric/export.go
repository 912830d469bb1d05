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

package metric

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

type Exporter struct {
	mutex   sync.Mutex
	records []KernelRecord
}

func NewExporter() *Exporter {
	return &Exporter{
		records: []KernelRecord{},
	}
}

func (ep *Exporter) ReportExecution(record KernelRecord) {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()
	ep.records = append(ep.records, record)
}

func (ep *Exporter) Records() []KernelRecord {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()

	out := make([]KernelRecord, len(ep.records))
	copy(out, ep.records)
	return out
}

func (ep *Exporter) GetRecordLen() int {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()
	return len(ep.records)
}

func (ep *Exporter) WriteCSV(w io.Writer) error {
	records := ep.Records()
	return gocsv.Marshal(&records, w)
}

// FinishAndSave writes all records to <prefix>_sweep.csv and returns the
// file name.
func (ep *Exporter) FinishAndSave(outputPathPrefix string) (string, error) {
	fileName := outputPathPrefix + "_sweep.csv"
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", err
		}
	}

	f, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	defer f.Close()

	records := ep.Records()
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return "", err
	}
	return fileName, nil
}

// ReadRecords parses a CSV previously written by the exporter.
func ReadRecords(r io.Reader) ([]KernelRecord, error) {
	var records []KernelRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}
