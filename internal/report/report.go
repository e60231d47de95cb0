package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/invorto/invorto-go/pkg/invorto"
)

// Workbook sheet names.
const (
	CallsSheet = "Calls"
	UsageSheet = "Usage"
)

var callsHeader = []string{"ID", "Agent", "Direction", "From", "To", "Status", "Started", "Ended", "Duration (s)", "Cost (INR)"}

// WriteCalls exports a page of calls to an xlsx workbook at path.
func WriteCalls(path string, calls []invorto.Call) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), CallsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, CallsSheet, 1, toAny(callsHeader)); err != nil {
		return err
	}

	for i, call := range calls {
		row := []any{
			call.ID,
			call.AgentID,
			string(call.Direction),
			call.FromNum,
			call.ToNum,
			string(call.Status),
			call.StartedAt,
			strOrEmpty(call.EndedAt),
		}
		if call.Duration != nil {
			row = append(row, *call.Duration)
		} else {
			row = append(row, "")
		}
		if call.CostINR != nil {
			row = append(row, *call.CostINR)
		} else {
			row = append(row, "")
		}
		if err := writeRow(f, CallsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteUsage exports a tenant usage snapshot to an xlsx workbook at path.
// The calls and agents maps are flattened to metric/value rows in key order.
func WriteUsage(path string, usage *invorto.TenantUsage) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), UsageSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, UsageSheet, 1, []any{"Section", "Metric", "Value"}); err != nil {
		return err
	}

	row := 2
	row, err := writeMetrics(f, row, "tenant", map[string]any{"id": usage.TenantID, "period": usage.Period})
	if err != nil {
		return err
	}
	row, err = writeMetrics(f, row, "calls", usage.Calls)
	if err != nil {
		return err
	}
	if _, err = writeMetrics(f, row, "agents", usage.Agents); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeMetrics(f *excelize.File, row int, section string, metrics map[string]any) (int, error) {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writeRow(f, UsageSheet, row, []any{section, k, fmt.Sprint(metrics[k])}); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
