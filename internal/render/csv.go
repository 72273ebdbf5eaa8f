package render

import (
	"encoding/csv"
	"io"
)

// ExportFilename is the download name of the resource cost export.
const ExportFilename = "azure_resource_costs.csv"

// ExportContentType is the media type of the resource cost export.
const ExportContentType = "text/csv"

// WriteCSV writes the resource cost table: a header row with an empty index
// caption and "Cost (USD)", then one name,cost row per resource in order.
func WriteCSV(w io.Writer, costs []ResourceCost) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"", "Cost (USD)"}); err != nil {
		return err
	}
	for _, rc := range costs {
		if err := cw.Write([]string{rc.Name, rc.Cost.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
