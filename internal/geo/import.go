// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package geo

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/veiltrics/veiltrics/internal/logging"
)

// Expected CSV columns, matching the converter that produces the
// database from the upstream IP-location dump.
const (
	colNetwork     = 0
	colCountryCode = 2
	expectedCols   = 6
)

// LoadCSV reads range rows from the CSV export
// (network,continent_code,country_code,country_name,region_name,city_name)
// into the store. Rows with malformed CIDRs or missing country codes are
// skipped and counted, not fatal: the database is best-effort reference
// data. Finalize is called before returning.
func LoadCSV(store *Store, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read geo CSV header: %w", err)
	}
	if len(header) < expectedCols || strings.TrimSpace(header[colNetwork]) != "network" {
		return fmt.Errorf("unexpected geo CSV header: %v", header)
	}

	var loaded, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read geo CSV row: %w", err)
		}
		if len(record) < expectedCols {
			skipped++
			continue
		}

		prefix, err := netip.ParsePrefix(strings.TrimSpace(record[colNetwork]))
		if err != nil {
			skipped++
			continue
		}
		country := strings.ToUpper(strings.TrimSpace(record[colCountryCode]))
		if len(country) != 2 {
			skipped++
			continue
		}

		store.Add(prefix, country)
		loaded++
	}

	store.Finalize()

	logging.Info().
		Int("ranges", loaded).
		Int("skipped", skipped).
		Msg("geo database loaded")

	return nil
}

// LoadFile loads the range database from a CSV file, transparently
// decompressing .gz files.
func LoadFile(store *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open geo database: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip geo database: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return LoadCSV(store, r)
}
