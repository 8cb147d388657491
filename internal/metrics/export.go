package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillyst"

var (
	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "PDF 导出总数（按模板）。",
		},
		[]string{"variant"},
	)

	exportsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_failed_total",
			Help:      "PDF 导出失败总数（按失败阶段）。",
		},
		[]string{"variant", "kind"},
	)

	exportsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_in_progress",
			Help:      "当前正在进行的导出数量。",
		},
	)

	exportPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "pages",
			Help:      "每次导出生成的 PDF 页数。",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "导出流程耗时分布（秒）。",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"variant"},
	)
)

// ExportRecorder 记录导出流程指标。零值可直接使用。
type ExportRecorder struct{}

func (ExportRecorder) Started() {
	exportsInProgress.Inc()
}

func (ExportRecorder) Finished(variant string, seconds float64) {
	exportsInProgress.Dec()
	exportsTotal.WithLabelValues(variant).Inc()
	exportDuration.WithLabelValues(variant).Observe(seconds)
}

func (ExportRecorder) Failed(variant, kind string) {
	exportsFailedTotal.WithLabelValues(variant, kind).Inc()
}

func (ExportRecorder) Pages(n int) {
	exportPages.Observe(float64(n))
}
