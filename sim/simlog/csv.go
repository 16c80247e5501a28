package simlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV exports the log as CSV with a header row:
// time,process,state,item,note.
func WriteCSV(l *Log, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "process", "state", "item", "note"}); err != nil {
		return err
	}
	for _, r := range l.Records() {
		row := []string{
			strconv.FormatFloat(r.Time, 'g', -1, 64),
			r.Process,
			string(r.State),
			strconv.Itoa(r.Item),
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log to a CSV file at path.
func SaveCSV(l *Log, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(l, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
