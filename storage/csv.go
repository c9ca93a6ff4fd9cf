/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tabella Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Velocidex/ordereddict"
)

// ReadCSV loads a CSV file into records, one ordered dict per row. The
// first row names the fields; every value is loaded as a string. Short
// rows leave trailing fields absent. This lets the view model wrap
// file-based data without a database.
func ReadCSV(path string) ([]*ordereddict.Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %q: %w", path, err)
	}
	return records, nil
}

func readCSV(r io.Reader) ([]*ordereddict.Dict, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []*ordereddict.Dict
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := ordereddict.NewDict()
		for i, name := range header {
			if i >= len(row) {
				break
			}
			record.Set(name, row[i])
		}
		records = append(records, record)
	}
	return records, nil
}
