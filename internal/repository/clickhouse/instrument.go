package clickhouse

import "chainboard/internal/metrics"

// observeQuery records the outcome of one warehouse query
func observeQuery(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.WarehouseQueries.WithLabelValues(operation, status).Inc()
}
