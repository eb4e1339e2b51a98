package handlers

import (
	"net/http"

	"github.com/thsteixeira/precatorios/internal/brformat"
)

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"totais": map[string]int64{
			"precatorios":   stats.TotalPrecatorios,
			"clientes":      stats.TotalClientes,
			"alvaras":       stats.TotalAlvaras,
			"requerimentos": stats.TotalRequerimentos,
		},
		"valores": map[string]any{
			"precatorios":       stats.ValorPrecatorios,
			"precatorios_fmt":   brformat.FormatCurrency(stats.ValorPrecatorios),
			"alvaras":           stats.ValorAlvaras,
			"alvaras_fmt":       brformat.FormatCurrency(stats.ValorAlvaras),
			"requerimentos":     stats.ValorRequerimentos,
			"requerimentos_fmt": brformat.FormatCurrency(stats.ValorRequerimentos),
		},
		"recentes": map[string]any{
			"precatorios":   viewPrecatorios(stats.RecentPrecatorios),
			"alvaras":       viewAlvaras(stats.RecentAlvaras),
			"requerimentos": viewRequerimentos(stats.RecentRequerimentos),
		},
	})
}
