// Package contacts loads person records from CSV and writes ranked
// resolution results back out.
package contacts

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/resolve"
)

// Input column headers, matching the sheet export this tool consumes.
const (
	colName     = "Name"
	colCompany  = "Company"
	colTitle    = "Title / Role"
	colIndustry = "Industry"
	colLinkedIn = "LinkedIn URL"
	colLocation = "Location"
)

// topN is how many ranked emails get their own column set.
const topN = 3

// Load reads contacts from a CSV file. Rows without a Name are skipped;
// every column except Name is optional.
func Load(path string) ([]model.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "contacts: open input")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "contacts: read csv")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := make(map[string]int)
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, eris.Errorf("contacts: input missing %q column", colName)
	}

	field := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []model.Contact
	for _, row := range rows[1:] {
		name := field(row, colName)
		if name == "" {
			continue
		}
		out = append(out, model.Contact{
			Name:        name,
			Company:     field(row, colCompany),
			Title:       field(row, colTitle),
			Industry:    field(row, colIndustry),
			LinkedInURL: field(row, colLinkedIn),
			Location:    field(row, colLocation),
		})
	}
	return out, nil
}

// Write serializes results to a CSV file: contact fields, the top three
// ranked candidates as Email N / Source / Confidence column triples, and
// the full deduplicated list joined in one column.
func Write(path string, results []*model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "contacts: create output")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)

	header := []string{colName, colCompany, "Title", colIndustry, colLinkedIn}
	for i := 1; i <= topN; i++ {
		header = append(header,
			fmt.Sprintf("Email %d", i),
			fmt.Sprintf("Email %d Source", i),
			fmt.Sprintf("Email %d Confidence", i),
		)
	}
	header = append(header, "All Emails")
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "contacts: write header")
	}

	for _, res := range results {
		if err := w.Write(Row(res)); err != nil {
			return eris.Wrap(err, "contacts: write row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "contacts: flush output")
}

// Row builds one output row for a result.
func Row(res *model.Result) []string {
	c := res.Contact
	row := []string{c.Name, c.Company, c.Title, c.Industry, c.LinkedInURL}

	top := resolve.Top(res.Candidates, topN)
	for i := 0; i < topN; i++ {
		if i < len(top) {
			row = append(row, top[i].Email, string(top[i].Source), string(top[i].Confidence))
		} else {
			row = append(row, "", "", "")
		}
	}

	all := make([]string, 0, len(res.Candidates))
	for _, cand := range res.Candidates {
		all = append(all, cand.Email)
	}
	row = append(row, strings.Join(all, "; "))
	return row
}
