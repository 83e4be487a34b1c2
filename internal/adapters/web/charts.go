package web

import (
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/timeseries"
)

// labelLayout formats sample timestamps as chart axis labels
const labelLayout = "15:04:05"

type dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type chartData struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type viewResponse struct {
	ID       string                       `json:"id"`
	FarmID   string                       `json:"farm_id"`
	OpenedAt time.Time                    `json:"opened_at"`
	Charts   map[domain.Channel]chartData `json:"charts"`
	DLI      chartData                    `json:"dli"`
}

func newViewResponse(view *ports.DetailView) viewResponse {
	buf := view.Charts()
	charts := make(map[domain.Channel]chartData, len(domain.EnvironmentChannels))
	for _, channel := range domain.EnvironmentChannels {
		series := buf.Series(channel)
		charts[channel] = chartData{
			Labels:   labels(series),
			Datasets: []dataset{{Label: channel.Label(), Data: series.Values()}},
		}
	}

	// the three DLI series share timestamps
	dli := view.DLI()
	dliChart := chartData{
		Labels:   labels(dli.Series(domain.ChannelDLI)),
		Datasets: make([]dataset, 0, len(domain.DLIChannels)),
	}
	for _, channel := range domain.DLIChannels {
		dliChart.Datasets = append(dliChart.Datasets, dataset{
			Label: channel.Label(),
			Data:  dli.Series(channel).Values(),
		})
	}

	return viewResponse{
		ID:       view.ID.String(),
		FarmID:   view.FarmID,
		OpenedAt: view.OpenedAt,
		Charts:   charts,
		DLI:      dliChart,
	}
}

func labels(series timeseries.Series) []string {
	ts := series.Timestamps()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format(labelLayout)
	}
	return out
}
