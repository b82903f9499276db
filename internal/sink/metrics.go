package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 输出端的运行计数，挂在默认 registry 上
// 本库只负责计数，暴露方式（HTTP handler 等）由宿主决定
var (
	emittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alhena",
		Name:      "emitted_total",
		Help:      "Messages accepted by the sink, by level.",
	}, []string{"sink", "level"})

	writeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alhena",
		Name:      "write_errors_total",
		Help:      "Write or flush failures downgraded to a false emit.",
	}, []string{"sink"})

	flushesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alhena",
		Name:      "flushes_total",
		Help:      "Forced flushes triggered by the flush policy.",
	}, []string{"sink"})

	rotationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alhena",
		Name:      "rotations_total",
		Help:      "Day-boundary rotations performed by the rolling sink.",
	})
)
