package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/solver"
	"github.com/san-kum/equilib/internal/storage"
)

type ExportData struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Demand     string            `json:"demand"`
	Supply     string            `json:"supply"`
	Result     solver.Result     `json:"result"`
	Elasticity elasticity.Report `json:"elasticity"`
	Welfare    *market.Welfare   `json:"welfare,omitempty"`
	Curves     market.Curves     `json:"curves"`
}

// WriteJSON writes a saved run and its curves as indented JSON.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, curves market.Curves) error {
	data := ExportData{
		ID:         meta.ID,
		Name:       meta.Name,
		Result:     meta.Result,
		Elasticity: meta.Elasticity,
		Welfare:    meta.Welfare,
		Curves:     curves,
	}
	if fn, err := meta.Demand.Func(); err == nil {
		data.Demand = fmt.Sprint(fn)
	}
	if fn, err := meta.Supply.Func(); err == nil {
		data.Supply = fmt.Sprint(fn)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
