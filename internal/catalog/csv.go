package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// bom is the UTF-8 byte order mark, prepended to exports so Excel on
// Windows detects the encoding.
var bom = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"name", "code", "quantity", "mrp"}

// ParseCSV reads a product import file. The first row must be the
// header `name,code,quantity,mrp`; a leading BOM is tolerated.
func ParseCSV(r io.Reader) ([]Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], string(bom))
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("catalog: csv header must be %q", strings.Join(csvHeader, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return nil, fmt.Errorf("catalog: csv header must be %q", strings.Join(csvHeader, ","))
		}
	}

	var products []Product
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: csv line %d: %w", line, err)
		}

		p := Product{
			Name: strings.TrimSpace(record[0]),
			Code: strings.TrimSpace(record[1]),
		}
		if p.Name == "" || p.Code == "" {
			return nil, fmt.Errorf("catalog: csv line %d: name and code are required", line)
		}
		if p.Quantity, err = strconv.ParseFloat(strings.TrimSpace(record[2]), 64); err != nil {
			return nil, fmt.Errorf("catalog: csv line %d: invalid quantity %q", line, record[2])
		}
		if p.MRP, err = strconv.ParseFloat(strings.TrimSpace(record[3]), 64); err != nil {
			return nil, fmt.Errorf("catalog: csv line %d: invalid mrp %q", line, record[3])
		}
		if p.Quantity < 0 || p.MRP <= 0 {
			return nil, fmt.Errorf("catalog: csv line %d: quantity must be >= 0 and mrp > 0", line)
		}
		products = append(products, p)
	}
	return products, nil
}

// WriteCSV serialises the catalog for download, BOM-prefixed with CRLF
// line endings.
func WriteCSV(w io.Writer, products []Product) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("catalog: write csv: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("catalog: write csv: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.Code,
			strconv.FormatFloat(p.Quantity, 'f', -1, 64),
			strconv.FormatFloat(p.MRP, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("catalog: write csv: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("catalog: write csv: %w", err)
	}
	return nil
}
