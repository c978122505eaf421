package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"parking-allocator/internal/parking"
)

// lotCollector exposes a point-in-time view of the lot on /metrics.
type lotCollector struct {
	lot   *parking.Lot
	spots *prometheus.Desc
	price *prometheus.Desc
}

func newLotCollector(lot *parking.Lot) *lotCollector {
	return &lotCollector{
		lot: lot,
		spots: prometheus.NewDesc("parking_spots",
			"Number of parking spots by category and state.",
			[]string{"category", "state"}, nil),
		price: prometheus.NewDesc("parking_spot_price",
			"Fixed fee of a parking spot by category.",
			[]string{"category"}, nil),
	}
}

func (c *lotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.spots
	ch <- c.price
}

func (c *lotCollector) Collect(ch chan<- prometheus.Metric) {
	for _, status := range c.lot.Status() {
		category := status.Category.String()
		ch <- prometheus.MustNewConstMetric(c.spots, prometheus.GaugeValue, float64(status.Occupied), category, "occupied")
		ch <- prometheus.MustNewConstMetric(c.spots, prometheus.GaugeValue, float64(status.Available), category, "available")
		ch <- prometheus.MustNewConstMetric(c.price, prometheus.GaugeValue, float64(status.Price), category)
	}
}
