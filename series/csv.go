package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// TimeLayout is the timestamp layout of the tabular boundary format.
const TimeLayout = "2006-01-02 15:04:05"

// csv column order of the boundary format; is_night is optional.
var csvHeader = []string{"datetime", "t_outdoor", "t_vorlauf", "is_night"}

// WriteCSV writes the series in the tabular boundary format
// (datetime, t_outdoor, t_vorlauf, is_night). The is_night column is only
// emitted for labeled series; missing flow values become empty fields.
func WriteCSV(w io.Writer, s *Series) error {
	if err := s.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := csvHeader
	if !s.Labeled() {
		header = csvHeader[:3]
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(header))
	for i := range s.Timestamps {
		record[0] = s.Timestamps[i].Format(TimeLayout)
		record[1] = strconv.FormatFloat(s.Outdoor[i], 'f', -1, 64)
		if s.Missing(i) {
			record[2] = ""
		} else {
			record[2] = strconv.FormatFloat(s.Flow[i], 'f', -1, 64)
		}
		if s.Labeled() {
			record[3] = strconv.FormatBool(s.Night[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadCSV parses the tabular boundary format produced by WriteCSV (or by an
// external exporter honoring the same columns). Empty t_vorlauf fields are
// read back as missing values.
func ReadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < 3 || header[0] != "datetime" || header[1] != "t_outdoor" || header[2] != "t_vorlauf" {
		return nil, fmt.Errorf("unexpected csv header %v, want %v", header, csvHeader)
	}
	labeled := len(header) >= 4 && header[3] == "is_night"

	s := New(1024)
	if labeled {
		s.Night = make([]bool, 0, 1024)
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("csv line %d has %d fields, want at least 3", line, len(record))
		}

		ts, err := time.Parse(TimeLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad datetime %q: %w", line, record[0], err)
		}
		outdoor, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad t_outdoor %q: %w", line, record[1], err)
		}

		flow := math.NaN()
		if record[2] != "" {
			flow, err = strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: bad t_vorlauf %q: %w", line, record[2], err)
			}
		}

		s.Append(ts, outdoor, flow)
		if labeled {
			night := false
			if len(record) >= 4 && record[3] != "" {
				night, err = strconv.ParseBool(record[3])
				if err != nil {
					return nil, fmt.Errorf("csv line %d: bad is_night %q: %w", line, record[3], err)
				}
			}
			s.Night = append(s.Night, night)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
