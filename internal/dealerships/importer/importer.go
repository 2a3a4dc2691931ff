// Package importer turns uploaded CSV lead files into dealership records.
// Parsing and row bookkeeping live here; persistence goes through the Store
// port so the row-level semantics are testable without a database.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxErrorMessages caps the error preview in the summary. Rows past the cap
// still count as failed.
const maxErrorMessages = 10

var ErrMissingHeader = errors.New("csv has no header row")

// Row is a normalized lead row ready for persistence.
type Row struct {
	Name             string
	ContactFirstName string
	ContactLastName  string
	ContactEmail     string
	ContactPhone     string
	ContactPosition  string
	Address          string
	City             string
	State            string
	ZipCode          string
	Phone            string
	Website          string
	Source           string
}

// HasContact reports whether the row carries enough to create a primary
// contact alongside the dealership.
func (r Row) HasContact() bool {
	return r.ContactFirstName != "" || r.ContactEmail != ""
}

// Store is the persistence boundary for the importer.
type Store interface {
	// DealershipExists does a case-insensitive exact-name lookup.
	DealershipExists(ctx context.Context, name string) (bool, error)
	// CreateRow persists the dealership, optional contact and audit
	// activity atomically.
	CreateRow(ctx context.Context, row Row) error
}

// Summary reports the outcome of one import batch.
type Summary struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// headerFields maps normalized header names onto canonical row fields. CSV
// exports from different tools label the same column differently, so each
// field accepts several synonyms.
var headerFields = map[string]func(*Row, string){
	"name":            func(r *Row, v string) { r.Name = v },
	"company":         func(r *Row, v string) { r.Name = v },
	"companyname":     func(r *Row, v string) { r.Name = v },
	"dealership":      func(r *Row, v string) { r.Name = v },
	"dealershipname":  func(r *Row, v string) { r.Name = v },
	"first":           func(r *Row, v string) { r.ContactFirstName = v },
	"firstname":       func(r *Row, v string) { r.ContactFirstName = v },
	"contactfirst":    func(r *Row, v string) { r.ContactFirstName = v },
	"contactname":     func(r *Row, v string) { r.ContactFirstName = v },
	"last":            func(r *Row, v string) { r.ContactLastName = v },
	"lastname":        func(r *Row, v string) { r.ContactLastName = v },
	"contactlast":     func(r *Row, v string) { r.ContactLastName = v },
	"email":           func(r *Row, v string) { r.ContactEmail = v },
	"contactemail":    func(r *Row, v string) { r.ContactEmail = v },
	"emailaddress":    func(r *Row, v string) { r.ContactEmail = v },
	"contactphone":    func(r *Row, v string) { r.ContactPhone = v },
	"mobile":          func(r *Row, v string) { r.ContactPhone = v },
	"position":        func(r *Row, v string) { r.ContactPosition = v },
	"title":           func(r *Row, v string) { r.ContactPosition = v },
	"jobtitle":        func(r *Row, v string) { r.ContactPosition = v },
	"address":         func(r *Row, v string) { r.Address = v },
	"street":          func(r *Row, v string) { r.Address = v },
	"city":            func(r *Row, v string) { r.City = v },
	"state":           func(r *Row, v string) { r.State = v },
	"zip":             func(r *Row, v string) { r.ZipCode = v },
	"zipcode":         func(r *Row, v string) { r.ZipCode = v },
	"postalcode":      func(r *Row, v string) { r.ZipCode = v },
	"phone":           func(r *Row, v string) { r.Phone = v },
	"phonenumber":     func(r *Row, v string) { r.Phone = v },
	"website":         func(r *Row, v string) { r.Website = v },
	"url":             func(r *Row, v string) { r.Website = v },
	"source":          func(r *Row, v string) { r.Source = v },
	"leadsource":      func(r *Row, v string) { r.Source = v },
}

// normalizeHeader lowercases and strips spaces, underscores and dashes so
// "Dealership Name", "dealership_name" and "DealershipName" all match.
func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, header)
}

// Import reads the CSV and processes rows one at a time. A failing row never
// aborts the batch; the summary carries aggregate counts and a bounded error
// preview.
func Import(ctx context.Context, reader io.Reader, store Store) (Summary, error) {
	cr := csv.NewReader(reader)
	cr.TrimLeadingSpace = true
	// Tolerate ragged rows; missing trailing cells read as empty.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Summary{}, ErrMissingHeader
		}
		return Summary{}, fmt.Errorf("read csv header: %w", err)
	}

	setters := make([]func(*Row, string), len(header))
	for i, name := range header {
		setters[i] = headerFields[normalizeHeader(name)]
	}

	var summary Summary
	line := 1
	for {
		line++
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.fail(line, err)
			continue
		}

		var row Row
		for i, value := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&row, strings.TrimSpace(value))
			}
		}

		// Rows without a dealership name are skipped, not failed.
		if row.Name == "" {
			summary.Skipped++
			continue
		}

		exists, err := store.DealershipExists(ctx, row.Name)
		if err != nil {
			summary.fail(line, err)
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		if err := store.CreateRow(ctx, row); err != nil {
			summary.fail(line, err)
			continue
		}
		summary.Created++
	}

	return summary, nil
}

func (s *Summary) fail(line int, err error) {
	s.Failed++
	if len(s.Errors) < maxErrorMessages {
		s.Errors = append(s.Errors, fmt.Sprintf("row %d: %v", line, err))
	}
}
